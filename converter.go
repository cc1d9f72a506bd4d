package writeup

// Converter converts HTML fragments to Markdown.
type Converter interface {
	// Convert returns the Markdown form of html.
	// Returns EINVALID for empty input.
	Convert(html string) (string, error)
}
