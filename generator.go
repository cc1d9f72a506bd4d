package writeup

import (
	"context"
	"time"
)

// Generator turns pages into notes. It holds no mutable state; the same
// Generator may serve any number of pages.
type Generator struct {
	Registry PlatformRegistry
	Config   Config

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewGenerator returns a Generator using registry and cfg.
func NewGenerator(registry PlatformRegistry, cfg Config) *Generator {
	return &Generator{
		Registry: registry,
		Config:   cfg,
		Now:      time.Now,
	}
}

// Generate resolves the platform for page, normalizes its title, runs the
// platform extractors and renders the note. Extraction failures never fail
// generation; the platform placeholders are used instead.
// Returns EINVALID if page is nil.
func (g *Generator) Generate(ctx context.Context, page *Page) (*Note, error) {
	if page == nil {
		return nil, Errorf(EINVALID, "page required")
	}

	hostname := page.Hostname()
	platform := g.Registry.Resolve(hostname)
	title := platform.NormalizeTitle(page.Title)

	var steps string
	if platform.Steps != nil {
		steps = platform.Steps.ExtractSteps(ctx, page)
	}
	if steps == "" {
		steps = platform.StepsPlaceholder
	}

	var description string
	if platform.Description != nil {
		description = platform.Description.ExtractDescription(page)
	}
	if description == "" {
		description = platform.DescriptionPlaceholder
	}

	now := g.now()
	content := Render(g.Config.TemplateFor(platform), RenderContext{
		Title:       title,
		URL:         page.URL,
		Date:        now.UTC().Format("2006-01-02"),
		Time:        now.Format("15:04:05"),
		Steps:       steps,
		Description: description,
	})

	return &Note{
		Vault:    g.Config.Vault,
		Path:     NotePath(g.Config.BasePathFor(hostname, g.Registry), title),
		Content:  content,
		Platform: platform,
	}, nil
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}
