package writeup

import "strings"

// URIScheme is the scheme of the note-taking application.
const URIScheme = "obsidian"

// DefaultMaxURILength is the longest URI handed to the application with the
// content embedded. Browsers and OS handlers start truncating around 2048.
const DefaultMaxURILength = 2000

// Note is a generated writeup ready to be created in a vault.
type Note struct {
	// Vault is the vault name.
	Vault string

	// Path is the vault-relative file path, e.g. "网安/练习WP/NSSCTF/Web-SQL.md".
	Path string

	// Content is the rendered Markdown.
	Content string

	// Platform is the platform the note was generated for.
	Platform *Platform
}

// URI returns the note-creation URI with the content embedded.
func (n *Note) URI() string {
	return URIScheme + "://new?vault=" + EncodeURIComponent(n.Vault) +
		"&file=" + EncodeURIComponent(n.Path) +
		"&content=" + EncodeURIComponent(n.Content)
}

// ShortURI returns the URI that creates an empty file at the note path.
func (n *Note) ShortURI() string {
	return URIScheme + "://new?vault=" + EncodeURIComponent(n.Vault) +
		"&file=" + EncodeURIComponent(n.Path)
}

// NotePath joins a base path and a normalized title into a file path.
func NotePath(basePath, title string) string {
	return basePath + "/" + title + ".md"
}

// EncodeURIComponent percent-encodes s the way JavaScript's
// encodeURIComponent does: every byte except A-Z a-z 0-9 and -_.!~*'()
// is escaped, and spaces become %20.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
