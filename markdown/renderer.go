// Package markdown renders pitch reports as Markdown documents.
package markdown

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/fwojciec/storyscout"
)

// Ensure Renderer implements storyscout.ReportRenderer at compile time.
var _ storyscout.ReportRenderer = (*Renderer)(nil)

// Renderer renders a pitch and its source story into a Markdown report.
// An optional Converter flattens fields that still carry HTML markup,
// which happens for stories discovered through feed sources.
type Renderer struct {
	converter storyscout.Converter
	tmpl      *template.Template
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConverter installs an HTML-to-Markdown converter for markup-bearing
// fields.
func WithConverter(converter storyscout.Converter) Option {
	return func(r *Renderer) {
		r.converter = converter
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		tmpl: template.Must(template.New("report").
			Funcs(template.FuncMap{"add": func(a, b int) int { return a + b }}).
			Parse(reportTemplate)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// reportData is the template context.
type reportData struct {
	Pitch  *storyscout.Pitch
	Story  *storyscout.Story
	Sample string
}

// Render produces the Markdown report for the pitch.
func (r *Renderer) Render(pitch *storyscout.Pitch, story *storyscout.Story) ([]byte, error) {
	if pitch == nil {
		return nil, storyscout.Errorf(storyscout.EINVALID, "pitch required")
	}
	if story == nil {
		return nil, storyscout.Errorf(storyscout.EINVALID, "story required")
	}

	var buf bytes.Buffer
	data := reportData{
		Pitch:  pitch,
		Story:  story,
		Sample: r.flatten(story.ContentSample),
	}
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, storyscout.Errorf(storyscout.EINTERNAL, "rendering report: %v", err)
	}
	return buf.Bytes(), nil
}

// flatten converts markup-bearing text to Markdown when a converter is
// configured. Plain text passes through untouched.
func (r *Renderer) flatten(text string) string {
	if r.converter == nil || !strings.Contains(text, "<") {
		return text
	}
	converted, err := r.converter.Convert(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(converted)
}

const reportTemplate = `# {{.Pitch.Title}}

**Adaptation:** {{.Pitch.AdaptationType}}{{if .Pitch.Genre}} · **Genre:** {{.Pitch.Genre}}{{end}}
**Source:** [{{.Story.Title}} by {{.Story.Author}}]({{.Story.URL}})
**Engagement:** {{.Story.Reads}} reads · {{.Story.Votes}} votes · {{.Story.Parts}} parts
{{- if .Pitch.Assessment}}

## Adaptation Assessment

**Score:** {{.Pitch.Assessment.Score}}/10
**Recommended format:** {{.Pitch.Assessment.AdaptationType}}
**Target audience:** {{.Pitch.Assessment.TargetAudience}}

{{.Pitch.Assessment.Justification}}

**Genres:** {{range $i, $g := .Pitch.Assessment.Genres}}{{if $i}}, {{end}}{{$g}}{{end}}
**Similar works:** {{range $i, $w := .Pitch.Assessment.SimilarWorks}}{{if $i}}, {{end}}{{$w}}{{end}}
**Key elements:** {{range $i, $e := .Pitch.Assessment.KeyElements}}{{if $i}}, {{end}}{{$e}}{{end}}
{{- end}}
{{- if .Pitch.Logline}}

## Logline

{{.Pitch.Logline}}
{{- end}}
{{- if .Pitch.Synopsis}}

## Synopsis

{{.Pitch.Synopsis}}
{{- end}}
{{- if .Pitch.Characters}}

## Characters
{{range .Pitch.Characters}}
### {{.Name}} ({{.Role}})

{{.Description}}{{if .Motivation}}

*Motivation:* {{.Motivation}}{{end}}
{{end}}
{{- end}}
{{- if .Pitch.AudienceAnalysis}}

## Audience

{{.Pitch.AudienceAnalysis}}
{{- end}}
{{- if .Pitch.TrailerScript}}

## Teaser Trailer

{{.Pitch.TrailerScript}}
{{- end}}
{{- if .Pitch.AlternateEndings}}

## Alternate Endings
{{range $i, $e := .Pitch.AlternateEndings}}
**Ending {{add $i 1}}.** {{$e}}
{{end}}
{{- end}}
{{- if .Pitch.Cast}}

## Cast Suggestions
{{range .Pitch.Cast}}
- **{{.Character}}**: {{.Actor}}{{if .Rationale}} ({{.Rationale}}){{end}}
{{- end}}
{{- end}}
{{- if .Sample}}

## Story Sample

> {{.Sample}}
{{- end}}
`
