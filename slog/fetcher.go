// Package slog provides log/slog decorators for writeup services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/writeup"
)

// Ensure LoggingFetcher implements writeup.Fetcher.
var _ writeup.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   writeup.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next writeup.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingPageLoader implements writeup.PageLoader.
var _ writeup.PageLoader = (*LoggingPageLoader)(nil)

// LoggingPageLoader wraps a PageLoader with logging.
type LoggingPageLoader struct {
	next   writeup.PageLoader
	logger *slog.Logger
}

// NewLoggingPageLoader creates a new LoggingPageLoader.
func NewLoggingPageLoader(next writeup.PageLoader, logger *slog.Logger) *LoggingPageLoader {
	return &LoggingPageLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the loaded title.
func (l *LoggingPageLoader) Load(ctx context.Context, url string) (page *writeup.Page, err error) {
	defer func(begin time.Time) {
		var title string
		var size int
		if page != nil {
			title = page.Title
			size = len(page.HTML)
		}
		l.logger.Info("page load",
			"url", url,
			"title", title,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, url)
}
