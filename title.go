package writeup

import (
	"regexp"
	"strings"
)

// UnknownTitle is the slug used when a title normalizes to nothing.
const UnknownTitle = "Unknown"

// jsSpace matches the characters JavaScript treats as whitespace in \s and
// String.prototype.trim. Titles come from browsers, so full-width and
// no-break spaces must collapse the same way the page script saw them.
const jsSpace = `\t\n\v\f\r \p{Z}\x{FEFF}`

var (
	illegalCharsRe = regexp.MustCompile(`[?|:<>"*/\\]`)
	bracketRe      = regexp.MustCompile(`\[([^\]]+)\]`)
	dashRunRe      = regexp.MustCompile(`[-` + jsSpace + `]+`)
	edgeDashRe     = regexp.MustCompile(`^-+|-+$`)
)

// isJSSpace reports whether r is whitespace for JavaScript's trim.
func isJSSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

func trim(s string) string {
	return strings.TrimFunc(s, isJSSpace)
}

// StripIllegal removes characters that are not allowed in file names on
// common filesystems: ? | : < > " * / \
func StripIllegal(s string) string {
	return illegalCharsRe.ReplaceAllString(s, "")
}

// collapseDashes turns every run of dashes and whitespace into one dash,
// trims dashes at both ends and substitutes UnknownTitle for "".
func collapseDashes(s string) string {
	s = dashRunRe.ReplaceAllString(s, "-")
	s = edgeDashRe.ReplaceAllString(s, "")
	if s == "" {
		return UnknownTitle
	}
	return s
}

var (
	_ TitleNormalizer = BracketNormalizer{}
	_ TitleNormalizer = (*TokenNormalizer)(nil)
	_ TitleNormalizer = (*SuffixNormalizer)(nil)
)

// BracketNormalizer handles titles shaped like
// "[Category][Difficulty] Problem Name | Site". Bracketed tags become
// dash-separated prefixes of the problem name. It is also the default
// normalizer for unrecognized sites.
type BracketNormalizer struct{}

// Normalize implements TitleNormalizer.
func (BracketNormalizer) Normalize(title string) string {
	if title == "" {
		return UnknownTitle
	}

	// Only the part before the first pipe reaches the illegal-character
	// filter; the site suffix is discarded first.
	title, _, _ = strings.Cut(title, "|")
	title = trim(title)
	title = StripIllegal(title)

	var tags []string
	for _, m := range bracketRe.FindAllStringSubmatch(title, -1) {
		tags = append(tags, trim(m[1]))
	}

	problem := title
	if i := strings.LastIndex(title, "]"); i >= 0 {
		problem = title[i+1:]
	}
	problem = trim(problem)

	formatted := strings.Join(tags, "-")
	if problem != "" && problem != formatted {
		if formatted != "" {
			formatted = formatted + "-" + problem
		} else {
			formatted = problem
		}
	}

	return collapseDashes(formatted)
}

// TokenNormalizer removes a site name token from the title and slugifies
// the rest.
type TokenNormalizer struct {
	token      *regexp.Regexp
	separators string
}

// NewTokenNormalizer returns a normalizer that removes token
// case-insensitively and replaces every rune of separators with a space
// before slugifying.
func NewTokenNormalizer(token, separators string) *TokenNormalizer {
	n := &TokenNormalizer{separators: separators}
	if token != "" {
		n.token = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(token))
	}
	return n
}

// Normalize implements TitleNormalizer.
func (n *TokenNormalizer) Normalize(title string) string {
	if title == "" {
		return UnknownTitle
	}

	if n.token != nil {
		title = n.token.ReplaceAllString(title, "")
	}
	if n.separators != "" {
		title = strings.Map(func(r rune) rune {
			if strings.ContainsRune(n.separators, r) {
				return ' '
			}
			return r
		}, title)
	}
	title = trim(title)
	title = StripIllegal(title)

	return collapseDashes(title)
}

// SuffixNormalizer handles titles shaped like "Problem Name | Site".
// Internal whitespace is preserved; only the site suffix and illegal
// characters are removed.
type SuffixNormalizer struct {
	suffix *regexp.Regexp
}

// NewSuffixNormalizer returns a normalizer that strips a trailing
// "| site" suffix, matched case-insensitively with optional whitespace.
func NewSuffixNormalizer(site string) *SuffixNormalizer {
	ws := `[` + jsSpace + `]*`
	return &SuffixNormalizer{
		suffix: regexp.MustCompile(`(?i)` + ws + `\|` + ws + regexp.QuoteMeta(site) + ws + `$`),
	}
}

// Normalize implements TitleNormalizer.
func (n *SuffixNormalizer) Normalize(title string) string {
	title = n.suffix.ReplaceAllString(title, "")
	title = trim(title)
	title = StripIllegal(title)
	title = trim(title)
	if title == "" {
		return UnknownTitle
	}
	return title
}
