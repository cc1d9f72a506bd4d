package writeup

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Result is the outcome of one generate-and-publish run.
type Result struct {
	Note    *Note
	Publish PublishResult
}

// Runner generates a note for a page and publishes it.
type Runner interface {
	Run(ctx context.Context, page *Page) (*Result, error)
}

var _ Runner = (*Helper)(nil)

// Helper runs the whole pipeline for one user action. At most one run is in
// flight at a time because every run writes to the same vault file.
// The zero value is usable once Generator is set.
type Helper struct {
	Generator *Generator
	Publisher *Publisher

	once sync.Once
	sem  *semaphore.Weighted
}

// NewHelper returns a Helper. A nil publisher makes Run generate only.
func NewHelper(generator *Generator, publisher *Publisher) *Helper {
	return &Helper{Generator: generator, Publisher: publisher}
}

// Run generates and publishes a note for page.
// Returns ECONFLICT immediately if another run is still in progress.
func (h *Helper) Run(ctx context.Context, page *Page) (*Result, error) {
	h.once.Do(func() { h.sem = semaphore.NewWeighted(1) })
	if !h.sem.TryAcquire(1) {
		return nil, Errorf(ECONFLICT, "a note is already being generated")
	}
	defer h.sem.Release(1)

	note, err := h.Generator.Generate(ctx, page)
	if err != nil {
		return nil, err
	}

	result := &Result{Note: note}
	if h.Publisher == nil {
		return result, nil
	}

	result.Publish, err = h.Publisher.Publish(ctx, note)
	return result, err
}
