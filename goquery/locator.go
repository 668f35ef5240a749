// Package goquery implements the HTML extraction layer for storyscout
// using CSS selector cascades. All assumptions about the fiction site's
// markup live here, behind the storyscout.CardLocator, CardExtractor and
// DetailEnricher interfaces, so a template change on the site means
// updating the strategy lists in this package and nothing else.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storyscout"
)

// Ensure Locator implements storyscout.CardLocator at compile time.
var _ storyscout.CardLocator = (*Locator)(nil)

// CardStrategy is one way of finding story cards on a listing page.
// Strategies are pure functions of the document, so each one can be tested
// against a synthetic fixture capturing one known page-template variant.
type CardStrategy struct {
	// Name identifies the strategy in traces.
	Name string

	// Find returns the matching card elements in document order.
	Find func(doc *goquery.Document) *goquery.Selection
}

// selectorStrategy builds a CardStrategy from a plain CSS selector.
func selectorStrategy(name, selector string) CardStrategy {
	return CardStrategy{
		Name: name,
		Find: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find(selector)
		},
	}
}

// DefaultStrategies returns the listing-page cascade, ordered from most to
// least specific. Stable class names come first because they have the
// fewest false positives; the generic link-shape heuristic is the last
// resort because it risks picking up navigation and promo elements.
func DefaultStrategies() []CardStrategy {
	return []CardStrategy{
		selectorStrategy("story-list", "ul.story-list li, ul.story-card-container li"),
		selectorStrategy("story-card", "div.story-card, div.browse-story-item"),
		selectorStrategy("story-id-attr", "li[data-story-id], div[data-story-id]"),
		selectorStrategy("story-item", "li.browse-story-item, li.story-item, div.story-item"),
		{
			Name: "anchor-shape",
			Find: func(doc *goquery.Document) *goquery.Selection {
				return doc.Find("ul li").FilterFunction(func(_ int, sel *goquery.Selection) bool {
					href, ok := sel.Find("a").First().Attr("href")
					return ok && isStoryPath(href)
				})
			},
		},
	}
}

// Locator finds story-card fragments on a listing page by trying an
// ordered cascade of structural strategies.
type Locator struct {
	strategies []CardStrategy
	trace      func(strategy string, matches int)
}

// Option configures a Locator.
type Option func(*Locator)

// WithStrategies replaces the default strategy cascade.
func WithStrategies(strategies []CardStrategy) Option {
	return func(l *Locator) {
		l.strategies = strategies
	}
}

// WithTrace installs a callback invoked once per strategy tried, with the
// number of elements it matched. No-op by default.
func WithTrace(trace func(strategy string, matches int)) Option {
	return func(l *Locator) {
		l.trace = trace
	}
}

// NewLocator creates a Locator with the default strategy cascade.
func NewLocator(opts ...Option) *Locator {
	l := &Locator{strategies: DefaultStrategies()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns the outer HTML of each story card in document order.
// The cascade stops at the first strategy that yields at least one match;
// strategies are never merged or scored. An empty result means every
// strategy came up empty, which signals a page-template change rather
// than zero results.
func (l *Locator) Locate(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, storyscout.Errorf(storyscout.EINVALID, "failed to parse listing page: %v", err)
	}

	for _, strategy := range l.strategies {
		sel := strategy.Find(doc)
		if l.trace != nil {
			l.trace(strategy.Name, sel.Length())
		}
		if sel.Length() == 0 {
			continue
		}

		cards := make([]string, 0, sel.Length())
		sel.Each(func(_ int, card *goquery.Selection) {
			if fragment, err := goquery.OuterHtml(card); err == nil {
				cards = append(cards, fragment)
			}
		})
		if len(cards) > 0 {
			return cards, nil
		}
	}

	return nil, nil
}

// isStoryPath reports whether an href looks like a story permalink.
func isStoryPath(href string) bool {
	return strings.Contains(href, "/story/") || strings.Contains(href, "/w/")
}
