package mock

import (
	"context"

	"github.com/fwojciec/storyscout"
)

var _ storyscout.CardLocator = (*CardLocator)(nil)

// CardLocator is a mock implementation of storyscout.CardLocator.
type CardLocator struct {
	LocateFn func(html string) ([]string, error)
}

func (l *CardLocator) Locate(html string) ([]string, error) {
	return l.LocateFn(html)
}

var _ storyscout.CardExtractor = (*CardExtractor)(nil)

// CardExtractor is a mock implementation of storyscout.CardExtractor.
type CardExtractor struct {
	ExtractFn func(cardHTML string, baseURL string) (*storyscout.Story, error)
}

func (e *CardExtractor) Extract(cardHTML string, baseURL string) (*storyscout.Story, error) {
	return e.ExtractFn(cardHTML, baseURL)
}

var _ storyscout.DetailEnricher = (*DetailEnricher)(nil)

// DetailEnricher is a mock implementation of storyscout.DetailEnricher.
type DetailEnricher struct {
	EnrichFn func(ctx context.Context, storyURL string) *storyscout.StoryPatch
}

func (e *DetailEnricher) Enrich(ctx context.Context, storyURL string) *storyscout.StoryPatch {
	return e.EnrichFn(ctx, storyURL)
}

var _ storyscout.Converter = (*Converter)(nil)

// Converter is a mock implementation of storyscout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ storyscout.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of storyscout.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
