package slog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/writeup"
	"github.com/google/uuid"
)

var (
	_ writeup.Opener = (*LoggingOpener)(nil)
	_ writeup.Runner = (*LoggingRunner)(nil)
)

// LoggingOpener wraps an Opener with logging. The URI itself is not
// logged since it carries the whole note.
type LoggingOpener struct {
	next   writeup.Opener
	name   string
	logger *slog.Logger
}

// NewLoggingOpener creates a new LoggingOpener. name labels the opener in
// log records, e.g. "xdg-open".
func NewLoggingOpener(next writeup.Opener, name string, logger *slog.Logger) *LoggingOpener {
	return &LoggingOpener{next: next, name: name, logger: logger}
}

// Open delegates to the wrapped opener and logs the outcome.
func (o *LoggingOpener) Open(ctx context.Context, uri string) (err error) {
	defer func(begin time.Time) {
		scheme, _, _ := strings.Cut(uri, ":")
		o.logger.Info("open",
			"opener", o.name,
			"scheme", scheme,
			"bytes", len(uri),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return o.next.Open(ctx, uri)
}

// LoggingRunner wraps a Runner and tags every run with a unique id.
type LoggingRunner struct {
	next   writeup.Runner
	logger *slog.Logger

	// NewID generates run ids. Defaults to uuid.NewString.
	NewID func() string
}

// NewLoggingRunner creates a new LoggingRunner.
func NewLoggingRunner(next writeup.Runner, logger *slog.Logger) *LoggingRunner {
	return &LoggingRunner{next: next, logger: logger, NewID: uuid.NewString}
}

// Run delegates to the wrapped runner and logs the generated note.
func (r *LoggingRunner) Run(ctx context.Context, page *writeup.Page) (result *writeup.Result, err error) {
	id := r.NewID()
	r.logger.Info("run started", "run", id, "url", pageURL(page))
	defer func(begin time.Time) {
		attrs := []any{
			"run", id,
			"duration", time.Since(begin),
		}
		if result != nil && result.Note != nil {
			attrs = append(attrs,
				"path", result.Note.Path,
				"bytes", len(result.Note.Content),
				"truncated", result.Publish.Truncated,
			)
		}
		if err != nil {
			attrs = append(attrs, "code", writeup.ErrorCode(err), "err", err)
			r.logger.Error("run failed", attrs...)
			return
		}
		r.logger.Info("run finished", attrs...)
	}(time.Now())
	return r.next.Run(ctx, page)
}
