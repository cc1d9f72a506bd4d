package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/writeup"
	"github.com/fwojciec/writeup/exec"
	"github.com/fwojciec/writeup/fs"
	"github.com/fwojciec/writeup/goquery"
	"github.com/fwojciec/writeup/htmltomarkdown"
	wuhttp "github.com/fwojciec/writeup/http"
	"github.com/fwojciec/writeup/jsonschema"
	"github.com/fwojciec/writeup/rod"
	wuslog "github.com/fwojciec/writeup/slog"
	"github.com/fwojciec/writeup/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path default. Overridden by --db or WRITEUP_DB.
	DBPath string

	// Directory receiving notes too long for a URI.
	OutDir string

	// SQLite database backing the key/value store.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		OutDir: defaultOutDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("writeup"),
		kong.Description("Generate writeup notes for CTF and coding challenge pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"db_path": m.DBPath,
			"out_dir": m.OutDir,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'writeup --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger
	deps.Vault = cli.Vault

	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WRITEUP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	validator, err := jsonschema.NewConfigValidator()
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}
	deps.Storage = sqlite.NewStore(m.DB)
	deps.Config = writeup.NewConfigStore(deps.Storage, validator)

	// The challenge API is served from the origin of the challenge page.
	clientOpts := []wuhttp.ChallengeOption{wuhttp.WithRequestTimeout(cli.Timeout)}
	if origin := originOf(cli.Generate.URL); origin != "" {
		clientOpts = append(clientOpts, wuhttp.WithBaseURL(origin))
	}
	challenges := wuslog.NewLoggingChallengeService(wuhttp.NewChallengeClient(clientOpts...), logger)
	steps := wuslog.NewLoggingStepsExtractor(&writeup.ChallengeStepsExtractor{Service: challenges}, logger)
	codewars := goquery.NewDescriptionExtractor(htmltomarkdown.NewConverter())
	codewars.Logger = logger
	description := wuslog.NewLoggingDescriptionExtractor(codewars, logger)
	deps.Registry = wuslog.NewLoggingRegistry(writeup.NewDefaultRegistry(steps, description), logger)

	if strings.HasPrefix(kongCtx.Command(), "generate") {
		deps.Presenter = fs.NewPresenter(cli.OutDir)
		deps.Publisher = newPublisher(deps.Presenter, logger)

		switch {
		case cli.Generate.Render:
			loader, err := rod.NewLoader(
				rod.WithTimeout(cli.Timeout),
				rod.WithSettle(cli.Generate.Settle),
				rod.WithUserDataDir(cli.Generate.Profile),
				rod.WithHeadless(!cli.Generate.Show),
			)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer loader.Close()
			deps.Loader = wuslog.NewLoggingPageLoader(loader, logger)
		case cli.Generate.Fetch:
			fetcher := wuslog.NewLoggingFetcher(wuhttp.NewFetcher(wuhttp.WithTimeout(cli.Timeout)), logger)
			defer fetcher.Close()
			deps.Loader = wuslog.NewLoggingPageLoader(goquery.NewPageLoader(fetcher), logger)
		}
	}

	return kongCtx.Run(deps)
}

// newPublisher wires the system URI openers with logging.
func newPublisher(presenter writeup.ContentPresenter, logger *slog.Logger) *writeup.Publisher {
	p := &writeup.Publisher{Presenter: presenter}
	primary, secondary := exec.SystemOpeners()
	if primary != nil {
		p.Primary = wuslog.NewLoggingOpener(primary, primary.Name(), logger)
	}
	if secondary != nil {
		p.Secondary = wuslog.NewLoggingOpener(secondary, secondary.Name(), logger)
	}
	return p
}

// originOf returns scheme://host of rawURL, or "" unless it is an
// absolute http(s) URL.
func originOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "writeup.db"
	}
	dir := filepath.Join(home, ".writeup")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "writeup.db")
}

func defaultOutDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "writeup")
	}
	return filepath.Join(dir, "writeup")
}
