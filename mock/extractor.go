package mock

import (
	"context"

	"github.com/fwojciec/writeup"
)

var (
	_ writeup.StepsExtractor       = (*StepsExtractor)(nil)
	_ writeup.DescriptionExtractor = (*DescriptionExtractor)(nil)
	_ writeup.TitleNormalizer      = (*TitleNormalizer)(nil)
)

// StepsExtractor is a mock implementation of writeup.StepsExtractor.
type StepsExtractor struct {
	ExtractStepsFn func(ctx context.Context, page *writeup.Page) string
}

func (e *StepsExtractor) ExtractSteps(ctx context.Context, page *writeup.Page) string {
	return e.ExtractStepsFn(ctx, page)
}

// DescriptionExtractor is a mock implementation of writeup.DescriptionExtractor.
type DescriptionExtractor struct {
	ExtractDescriptionFn func(page *writeup.Page) string
}

func (e *DescriptionExtractor) ExtractDescription(page *writeup.Page) string {
	return e.ExtractDescriptionFn(page)
}

// TitleNormalizer is a mock implementation of writeup.TitleNormalizer.
type TitleNormalizer struct {
	NormalizeFn func(title string) string
}

func (n *TitleNormalizer) Normalize(title string) string {
	return n.NormalizeFn(title)
}
