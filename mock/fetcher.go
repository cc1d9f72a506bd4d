package mock

import (
	"context"

	"github.com/fwojciec/writeup"
)

var (
	_ writeup.Fetcher          = (*Fetcher)(nil)
	_ writeup.PageLoader       = (*PageLoader)(nil)
	_ writeup.ChallengeService = (*ChallengeService)(nil)
)

// Fetcher is a mock implementation of writeup.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// PageLoader is a mock implementation of writeup.PageLoader.
type PageLoader struct {
	LoadFn func(ctx context.Context, url string) (*writeup.Page, error)
}

func (l *PageLoader) Load(ctx context.Context, url string) (*writeup.Page, error) {
	return l.LoadFn(ctx, url)
}

// ChallengeService is a mock implementation of writeup.ChallengeService.
type ChallengeService struct {
	FindChallengeByIDFn func(ctx context.Context, id string) (*writeup.Challenge, error)
}

func (s *ChallengeService) FindChallengeByID(ctx context.Context, id string) (*writeup.Challenge, error) {
	return s.FindChallengeByIDFn(ctx, id)
}
