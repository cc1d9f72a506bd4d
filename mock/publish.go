package mock

import (
	"context"

	"github.com/fwojciec/writeup"
)

var (
	_ writeup.Opener           = (*Opener)(nil)
	_ writeup.ContentPresenter = (*ContentPresenter)(nil)
	_ writeup.Runner           = (*Runner)(nil)
	_ writeup.Converter        = (*Converter)(nil)
)

// Opener is a mock implementation of writeup.Opener.
type Opener struct {
	OpenFn func(ctx context.Context, uri string) error
}

func (o *Opener) Open(ctx context.Context, uri string) error {
	return o.OpenFn(ctx, uri)
}

// ContentPresenter is a mock implementation of writeup.ContentPresenter.
type ContentPresenter struct {
	PresentFn func(ctx context.Context, note *writeup.Note) error
}

func (p *ContentPresenter) Present(ctx context.Context, note *writeup.Note) error {
	return p.PresentFn(ctx, note)
}

// Runner is a mock implementation of writeup.Runner.
type Runner struct {
	RunFn func(ctx context.Context, page *writeup.Page) (*writeup.Result, error)
}

func (r *Runner) Run(ctx context.Context, page *writeup.Page) (*writeup.Result, error) {
	return r.RunFn(ctx, page)
}

// Converter is a mock implementation of writeup.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
