// Package fs provides file-based storage for rendered pitch reports.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fwojciec/storyscout"
)

// ReportFilename converts a story title to a filesystem-safe markdown
// filename. Example: "The House That Watches" → the-house-that-watches.md
func ReportFilename(title string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "untitled"
	}
	return slug + ".md"
}

// Slugify lowercases the text and replaces runs of non-alphanumeric
// characters with single hyphens.
func Slugify(text string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Ensure Writer implements storyscout.ReportWriter at compile time.
var _ storyscout.ReportWriter = (*Writer)(nil)

// Writer writes pitch reports as markdown files to a directory.
// Reports are written to a temporary file first and renamed into place
// so readers never observe a partially written report.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteReport writes a rendered report to disk and returns its path.
func (w *Writer) WriteReport(ctx context.Context, story *storyscout.Story, report []byte) (string, error) {
	if story == nil {
		return "", storyscout.Errorf(storyscout.EINVALID, "a story is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, ReportFilename(story.Title))
	tmpPath := fullPath + ".tmp"

	if err := os.WriteFile(tmpPath, report, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return fullPath, nil
}
