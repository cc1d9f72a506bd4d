package writeup

import "context"

// TitleNormalizer turns a raw page title into a filesystem-safe slug.
// Implementations are total: they never fail and never return "".
type TitleNormalizer interface {
	Normalize(title string) string
}

// StepsExtractor obtains per-challenge step descriptions, typically from a
// remote API. Failures degrade to "" and are never returned to the caller.
type StepsExtractor interface {
	ExtractSteps(ctx context.Context, page *Page) string
}

// DescriptionExtractor obtains the problem statement from page markup.
// Failures degrade to "".
type DescriptionExtractor interface {
	ExtractDescription(page *Page) string
}

// Platform describes how notes are produced for one recognized site.
// A Platform must not be modified after it has been registered.
type Platform struct {
	// Key is a hostname substring, unique within a registry.
	Key string

	// Name is the display name.
	Name string

	// DefaultPath is the vault directory used when the user has not
	// configured one for this platform.
	DefaultPath string

	// Template forces a template for this platform. Empty means the
	// configured template is used.
	Template TemplateID

	Normalizer  TitleNormalizer
	Steps       StepsExtractor       // optional
	Description DescriptionExtractor // optional

	// Placeholders substituted when the matching extractor yields nothing,
	// so the reader can tell that content was not filled in automatically.
	StepsPlaceholder       string
	DescriptionPlaceholder string
}

// NormalizeTitle normalizes title with the platform normalizer, falling
// back to BracketNormalizer.
func (p *Platform) NormalizeTitle(title string) string {
	if title == "" {
		return UnknownTitle
	}
	if p.Normalizer == nil {
		return BracketNormalizer{}.Normalize(title)
	}
	return p.Normalizer.Normalize(title)
}

// PlatformRegistry resolves platforms from hostnames.
type PlatformRegistry interface {
	// Resolve returns the first registered platform whose key is a
	// substring of hostname, or the fallback platform. Never returns nil.
	Resolve(hostname string) *Platform

	// Lookup is like Resolve but reports whether a registered key matched.
	// Returns nil and false when the fallback would be used.
	Lookup(hostname string) (*Platform, bool)

	// List returns registered platforms in resolution order.
	List() []*Platform
}
