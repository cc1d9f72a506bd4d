// Package goquery extracts note content from challenge page HTML using
// goquery.
package goquery

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/writeup"
)

// DescriptionLoadingText is shown by Codewars while the description is
// still being rendered client-side.
const DescriptionLoadingText = "Loading description..."

// Ensure DescriptionExtractor implements writeup.DescriptionExtractor at
// compile time.
var _ writeup.DescriptionExtractor = (*DescriptionExtractor)(nil)

// appSetupRe matches the JSON.parse("...") call of the embedded app setup
// script, capturing the escaped string literal.
var appSetupRe = regexp.MustCompile(`JSON\.parse\("((?:[^"\\]|\\[\s\S])*)"\)`)

// DescriptionExtractor extracts the Codewars kata description. Sources
// are tried in order: the embedded app setup data, the rendered
// #description element, then the og:description meta tag. The result is
// formatted as the body of a Markdown callout.
type DescriptionExtractor struct {
	converter writeup.Converter

	// Logger receives a warning when a stage fails and the next source is
	// tried. Nil disables logging.
	Logger *slog.Logger
}

// NewDescriptionExtractor returns a DescriptionExtractor. The converter
// turns the #description element into Markdown; when nil, or when
// conversion fails, the element text is used.
func NewDescriptionExtractor(converter writeup.Converter) *DescriptionExtractor {
	return &DescriptionExtractor{converter: converter}
}

// ExtractDescription implements writeup.DescriptionExtractor.
func (e *DescriptionExtractor) ExtractDescription(page *writeup.Page) string {
	if page == nil || page.HTML == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return ""
	}

	raw := e.descriptionFromScripts(doc)
	if raw == "" {
		raw = e.descriptionFromElement(doc)
	}
	if raw == "" {
		raw, _ = doc.Find(`meta[property="og:description"]`).First().Attr("content")
	}
	if raw == "" {
		return ""
	}

	return Callout(raw)
}

// Callout prefixes every line of s with "> ".
func Callout(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func (e *DescriptionExtractor) warn(msg string, args ...any) {
	if e.Logger != nil {
		e.Logger.Warn(msg, args...)
	}
}

func (e *DescriptionExtractor) descriptionFromScripts(doc *goquery.Document) string {
	var desc string
	doc.Find("script:not([src])").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "challengeName") {
			return true
		}
		m := appSetupRe.FindStringSubmatch(text)
		if m == nil {
			return true
		}

		// The capture is a string literal holding a JSON document.
		var encoded string
		if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &encoded); err != nil {
			e.warn("description: app setup literal", "error", err)
			return true
		}
		var data struct {
			Description any `json:"description"`
		}
		if err := json.Unmarshal([]byte(encoded), &data); err != nil {
			e.warn("description: app setup data", "error", err)
			return true
		}
		if d, ok := data.Description.(string); ok && d != "" {
			desc = d
			return false
		}
		return true
	})
	return desc
}

func (e *DescriptionExtractor) descriptionFromElement(doc *goquery.Document) string {
	sel := doc.Find("#description").First()
	if sel.Length() == 0 {
		return ""
	}

	text := strings.TrimSpace(sel.Text())
	if text == "" || text == DescriptionLoadingText {
		return ""
	}

	if e.converter != nil {
		inner, err := sel.Html()
		if err == nil {
			var md string
			md, err = e.converter.Convert(inner)
			if err == nil && md != "" {
				return md
			}
		}
		if err != nil {
			e.warn("description: convert element", "error", err)
		}
	}
	return text
}
