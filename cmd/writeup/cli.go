package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/writeup"
	"github.com/fwojciec/writeup/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Storage  writeup.Storage
	Config   *writeup.ConfigStore
	Registry writeup.PlatformRegistry

	// Loader loads pages for generate --fetch and --render. Nil otherwise.
	Loader    writeup.PageLoader
	Publisher *writeup.Publisher
	Presenter *fs.Presenter

	// Vault overrides the configured vault when non-empty.
	Vault string

	// Now defaults to time.Now.
	Now func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string        `name:"db" env:"WRITEUP_DB" default:"${db_path}" help:"Path of the settings database"`
	Vault   string        `env:"WRITEUP_VAULT" help:"Vault name, overrides the configured vault"`
	Timeout time.Duration `env:"WRITEUP_TIMEOUT" default:"10s" help:"Timeout for page loads and API requests"`
	OutDir  string        `name:"out-dir" default:"${out_dir}" type:"path" help:"Directory for notes too long to open through a URI"`
	Verbose bool          `short:"v" help:"Log every operation to stderr"`

	Generate  GenerateCmd  `cmd:"" help:"Generate a writeup note for a challenge page"`
	Platforms PlatformsCmd `cmd:"" help:"List recognized platforms and their note paths"`
	Templates TemplatesCmd `cmd:"" help:"List note templates"`
	Config    ConfigCmd    `cmd:"" help:"Show or change settings"`
	Storage   StorageCmd   `cmd:"" help:"Inspect or edit stored keys such as API tokens"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	URL     string        `short:"u" required:"" help:"Challenge page URL"`
	Title   string        `short:"t" help:"Page title, overrides the loaded title"`
	HTML    string        `name:"html" xor:"source" type:"existingfile" help:"Read page markup from a saved HTML file"`
	Fetch   bool          `xor:"source" help:"Fetch the page over HTTP"`
	Render  bool          `xor:"source" help:"Render the page in Chrome, capturing its web storage"`
	Settle  time.Duration `default:"500ms" help:"With --render, wait until the DOM is stable for this long"`
	Profile string        `type:"path" help:"With --render, Chrome profile directory holding logins"`
	Show    bool          `help:"With --render, show the browser window instead of running headless"`
	Print   bool          `short:"p" help:"Print the note instead of opening it"`
}

// PlatformsCmd is the "platforms" subcommand.
type PlatformsCmd struct{}

// TemplatesCmd is the "templates" subcommand.
type TemplatesCmd struct{}

// ConfigCmd groups the "config" subcommands.
type ConfigCmd struct {
	Show  ConfigShowCmd  `cmd:"" default:"1" help:"Print the current settings as JSON"`
	Set   ConfigSetCmd   `cmd:"" help:"Change one setting"`
	Reset ConfigResetCmd `cmd:"" help:"Restore the default settings"`
}

// ConfigShowCmd is the "config show" subcommand.
type ConfigShowCmd struct{}

// ConfigSetCmd is the "config set" subcommand.
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Setting name, or platformPaths.<host key>"`
	Value string `arg:"" help:"New value"`
}

// ConfigResetCmd is the "config reset" subcommand.
type ConfigResetCmd struct{}

// StorageCmd groups the "storage" subcommands.
type StorageCmd struct {
	Get StorageGetCmd `cmd:"" help:"Print a stored value"`
	Set StorageSetCmd `cmd:"" help:"Store a value"`
	Rm  StorageRmCmd  `cmd:"" help:"Remove a key"`
	Ls  StorageLsCmd  `cmd:"" help:"List stored keys"`
}

// ScopeFlag selects the storage scope for storage subcommands.
type ScopeFlag struct {
	Session bool `help:"Use the session scope instead of the local scope"`
}

func (f ScopeFlag) scope() writeup.StorageScope {
	if f.Session {
		return writeup.ScopeSession
	}
	return writeup.ScopeLocal
}

// StorageGetCmd is the "storage get" subcommand.
type StorageGetCmd struct {
	ScopeFlag
	Key string `arg:"" help:"Key"`
}

// StorageSetCmd is the "storage set" subcommand.
type StorageSetCmd struct {
	ScopeFlag
	Key   string `arg:"" help:"Key"`
	Value string `arg:"" help:"Value"`
}

// StorageRmCmd is the "storage rm" subcommand.
type StorageRmCmd struct {
	ScopeFlag
	Key string `arg:"" help:"Key"`
}

// StorageLsCmd is the "storage ls" subcommand.
type StorageLsCmd struct {
	ScopeFlag
}
