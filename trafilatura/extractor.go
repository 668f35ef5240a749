// Package trafilatura provides readable-text extraction from arbitrary
// HTML. It backs the content-sample fallback used when a chapter page does
// not match any known paragraph selector.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/storyscout"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements storyscout.TextExtractor at compile time.
var _ storyscout.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull main body text out of HTML,
// discarding navigation and other boilerplate.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML and returns the main body text.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", storyscout.Errorf(storyscout.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	return result.ContentText, nil
}
