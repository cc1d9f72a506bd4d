package writeup

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Page is the challenge page a note is generated for.
type Page struct {
	// URL is the full page address (document location href).
	URL string

	// Title is the raw document title.
	Title string

	// HTML is the page markup. Empty when only the URL and title are known.
	HTML string

	// Storage exposes browser-style key/value storage for the page origin.
	// May be nil.
	Storage Storage

	// Cookies are the cookies the browser holds for the page URL. They are
	// forwarded to the platform API along with the bearer token.
	Cookies []*http.Cookie
}

// Hostname returns the lowercased host of the page URL without port, like
// location.hostname. Returns "" if the URL cannot be parsed.
func (p *Page) Hostname() string {
	u, err := url.Parse(p.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Path returns the path component of the page URL.
func (p *Page) Path() string {
	u, err := url.Parse(p.URL)
	if err != nil {
		return ""
	}
	return u.Path
}

// PageLoader loads a page by URL, either statically or through a browser.
type PageLoader interface {
	Load(ctx context.Context, url string) (*Page, error)
}
