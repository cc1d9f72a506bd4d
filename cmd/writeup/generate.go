package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fwojciec/writeup"
	"github.com/fwojciec/writeup/goquery"
	wuslog "github.com/fwojciec/writeup/slog"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	page, err := c.loadPage(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", writeup.ErrorMessage(err))
		return err
	}

	cfg := loadConfig(deps)
	if deps.Vault != "" {
		cfg.Vault = deps.Vault
	}

	generator := writeup.NewGenerator(deps.Registry, cfg)
	if deps.Now != nil {
		generator.Now = deps.Now
	}

	var publisher *writeup.Publisher
	if !c.Print {
		publisher = deps.Publisher
	}
	runner := wuslog.NewLoggingRunner(writeup.NewHelper(generator, publisher), deps.logger())

	result, err := runner.Run(deps.Ctx, page)
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", writeup.ErrorMessage(err))
		return err
	}
	note := result.Note

	if publisher == nil {
		fmt.Fprintln(deps.Stdout, note.Content)
		fmt.Fprintf(deps.Stderr, "Generated %s (vault %q)\n", note.Path, note.Vault)
		return nil
	}

	if result.Publish.Truncated && deps.Presenter != nil {
		if path, perr := deps.Presenter.PathFor(note); perr == nil {
			fmt.Fprintf(deps.Stdout, "Note is too long to pass inline; content saved to %s\n", path)
			fmt.Fprintln(deps.Stdout, "Paste it into the new note.")
		}
	}

	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", writeup.ErrorMessage(err))
		if writeup.ErrorCode(err) == writeup.EUNAVAILABLE {
			fmt.Fprintln(deps.Stderr, "Hint: Is Obsidian installed? Use --print to write the note to stdout")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Opened %s in vault %q\n", note.Path, note.Vault)
	return nil
}

// loadPage builds the page from a saved file, a loader or the flags alone.
func (c *GenerateCmd) loadPage(deps *Dependencies) (*writeup.Page, error) {
	var page *writeup.Page
	switch {
	case c.HTML != "":
		data, err := os.ReadFile(c.HTML)
		if err != nil {
			return nil, writeup.Errorf(writeup.EINVALID, "reading %s: %v", c.HTML, err)
		}
		if page, err = goquery.ParsePage(c.URL, string(data)); err != nil {
			return nil, err
		}
	case c.Fetch || c.Render:
		if deps.Loader == nil {
			return nil, writeup.Errorf(writeup.EUNAVAILABLE, "no page loader configured")
		}
		var err error
		if page, err = deps.Loader.Load(deps.Ctx, c.URL); err != nil {
			return nil, err
		}
	default:
		page = &writeup.Page{URL: c.URL}
	}

	if page.Hostname() == "" {
		return nil, writeup.Errorf(writeup.EINVALID, "url %q must be absolute", c.URL)
	}
	if c.Title != "" {
		page.Title = c.Title
	}

	// Stored tokens back up whatever the rendered page carries.
	switch {
	case page.Storage == nil:
		page.Storage = deps.Storage
	case deps.Storage != nil:
		page.Storage = writeup.LayeredStorage{page.Storage, deps.Storage}
	}
	return page, nil
}

// loadConfig returns the stored settings, falling back to the defaults
// when they cannot be read.
func loadConfig(deps *Dependencies) writeup.Config {
	if deps.Config == nil {
		return writeup.DefaultConfig()
	}
	cfg, err := deps.Config.Load(deps.Ctx)
	if err != nil {
		deps.logger().Warn("stored config discarded", "code", writeup.ErrorCode(err), "err", err)
	}
	return cfg
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}
