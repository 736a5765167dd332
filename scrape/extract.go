// Package scrape extracts lyrics text from provider HTML pages.
//
// Scraped sites don't offer stable APIs, so each provider carries a Strategy:
// an ordered list of structural locators tried against the parsed page. The
// first locator that lands on a non-empty element wins, and its content is
// cleaned into plain text.
package scrape

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoMatch signals that no locator in the strategy matched the page
// structure. This is distinct from an empty extraction result: it means the
// site layout changed (or the page is not a lyrics page at all) and the
// resolver should treat the provider as failed and move on.
var ErrNoMatch = errors.New("no locator matched the page structure")

// Locator finds a candidate lyrics container in a parsed document.
type Locator func(doc *goquery.Document) *goquery.Selection

// Strategy is the ordered list of locators for one provider.
type Strategy []Locator

// Selector locates elements matching a CSS selector. Attribute-prefix
// selectors like `div[class^="Lyrics__Container"]` are supported, which
// covers sites that suffix their class names with build hashes.
func Selector(sel string) Locator {
	return func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(sel)
	}
}

// AfterMarker locates the first following sibling block of a marker element.
// Some sites ship the lyrics in an unclassed div that only has a stable
// position relative to a marker, not a usable selector of its own.
func AfterMarker(marker, sibling string) Locator {
	return func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(marker).First().NextAllFiltered(sibling).First()
	}
}

var whitespaceRuns = regexp.MustCompile(`[ \t]+\n`)

// Extract runs the strategy's locators in order against rawHTML and cleans
// the first non-empty match: line-break markup becomes newlines, remaining
// tags are stripped, and surrounding whitespace is trimmed.
//
// An empty cleaned string from a matched element is a valid result; only a
// page where nothing matched yields ErrNoMatch.
func Extract(rawHTML string, strategy Strategy) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	for _, locate := range strategy {
		sel := locate(doc)
		if sel.Length() == 0 {
			continue
		}
		if html, err := sel.Html(); err != nil || strings.TrimSpace(html) == "" {
			continue
		}
		return cleanSelection(sel), nil
	}

	return "", ErrNoMatch
}

// cleanSelection converts a matched container to plain text. <br> elements
// are replaced with literal newlines before the text pass so line structure
// survives tag stripping.
func cleanSelection(sel *goquery.Selection) string {
	sel.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithHtml("\n")
	})

	// Block-level children get their own lines even without explicit <br>s.
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	text := strings.Join(parts, "\n")

	text = whitespaceRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
