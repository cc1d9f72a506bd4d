package writeup

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Challenge is a problem fetched from a platform API.
type Challenge struct {
	ID          string
	Description string
	Steps       []ChallengeStep
}

// ChallengeStep is one sub-task of a challenge.
type ChallengeStep struct {
	Name        string
	Description string
}

// ChallengeService fetches challenges by identifier.
type ChallengeService interface {
	// FindChallengeByID returns the challenge with the given id.
	// Returns ENOTFOUND if the API reports no such challenge.
	FindChallengeByID(ctx context.Context, id string) (*Challenge, error)
}

var challengeIDRe = regexp.MustCompile(`/challenges/(\d+)`)

// ChallengeIDFromPath extracts the numeric id from paths such as
// "/challenges/380". Returns "" if the path has no such segment.
func ChallengeIDFromPath(path string) string {
	m := challengeIDRe.FindStringSubmatch(path)
	if m == nil {
		return ""
	}
	return m[1]
}

// markdownMarkerRe matches the marker some APIs prepend to Markdown bodies.
var markdownMarkerRe = regexp.MustCompile(`(?i)^!!!MARKDOWN!!!\s*`)

// StripMarkdownMarker removes a leading "!!!MARKDOWN!!!" marker and the
// whitespace after it.
func StripMarkdownMarker(s string) string {
	return markdownMarkerRe.ReplaceAllString(s, "")
}

// FormatChallenge renders a challenge as Markdown: a description section
// followed by numbered step sections with an answer line each.
// Returns "" if the challenge has neither description nor steps.
func FormatChallenge(c *Challenge) string {
	if c == nil {
		return ""
	}

	var parts []string

	if desc := strings.TrimSpace(StripMarkdownMarker(c.Description)); desc != "" {
		parts = append(parts, "## 题目描述\n\n"+desc)
	}

	if len(c.Steps) > 0 {
		blocks := make([]string, 0, len(c.Steps))
		for i, s := range c.Steps {
			num := i + 1
			name := s.Name
			if name == "" {
				name = "步骤 " + strconv.Itoa(num)
			}
			name = strings.TrimSpace(name)
			desc := StripMarkdownMarker(strings.TrimSpace(s.Description))

			var b strings.Builder
			fmt.Fprintf(&b, "### 步骤 %d：%s\n\n", num, name)
			if desc != "" {
				b.WriteString(desc)
				b.WriteString("\n\n")
			}
			b.WriteString("**解答**：\n\n")
			blocks = append(blocks, b.String())
		}
		parts = append(parts, "## 题目步骤\n\n"+strings.Join(blocks, "---\n\n"))
	}

	return strings.Join(parts, "\n\n---\n\n")
}

var _ StepsExtractor = (*ChallengeStepsExtractor)(nil)

// ChallengeStepsExtractor builds step content for challenge pages from a
// ChallengeService. The bearer token is looked up in the page storage and
// passed to the service through the context, together with the page
// cookies.
type ChallengeStepsExtractor struct {
	Service ChallengeService
}

// ExtractSteps implements StepsExtractor. Returns "" when the page path
// has no challenge id, the service fails or the challenge is empty.
func (e *ChallengeStepsExtractor) ExtractSteps(ctx context.Context, page *Page) string {
	if page == nil || e.Service == nil {
		return ""
	}
	id := ChallengeIDFromPath(page.Path())
	if id == "" {
		return ""
	}
	if token := LookupToken(ctx, page.Storage); token != "" {
		ctx = NewContextWithToken(ctx, token)
	}
	if len(page.Cookies) > 0 {
		ctx = NewContextWithCookies(ctx, page.Cookies)
	}
	c, err := e.Service.FindChallengeByID(ctx, id)
	if err != nil {
		return ""
	}
	return FormatChallenge(c)
}
