package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/writeup"
)

// Ensure PageLoader implements writeup.PageLoader at compile time.
var _ writeup.PageLoader = (*PageLoader)(nil)

// PageLoader loads pages by fetching their HTML and reading the title
// from the markup. Pages loaded this way have no storage.
type PageLoader struct {
	fetcher writeup.Fetcher
}

// NewPageLoader returns a PageLoader that fetches through fetcher.
func NewPageLoader(fetcher writeup.Fetcher) *PageLoader {
	return &PageLoader{fetcher: fetcher}
}

// Load implements writeup.PageLoader.
func (l *PageLoader) Load(ctx context.Context, url string) (*writeup.Page, error) {
	html, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParsePage(url, html)
}

// ParsePage builds a Page from raw HTML.
// Returns EINVALID if html cannot be parsed.
func ParsePage(url, html string) (*writeup.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, writeup.Errorf(writeup.EINVALID, "failed to parse HTML: %v", err)
	}
	return &writeup.Page{
		URL:   url,
		Title: documentTitle(doc),
		HTML:  html,
	}, nil
}

// TitleFromHTML returns the document title of html, or "".
func TitleFromHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return documentTitle(doc)
}

// documentTitle mirrors document.title: the first <title> text with ASCII
// whitespace stripped and collapsed.
func documentTitle(doc *goquery.Document) string {
	text := doc.Find("title").First().Text()
	return strings.Join(strings.FieldsFunc(text, isASCIISpace), " ")
}

func isASCIISpace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}
