package writeup

import "context"

// Fetcher retrieves the raw HTML of a URL.
type Fetcher interface {
	// Fetch returns the body of url. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
