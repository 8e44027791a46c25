package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/extract"
	"github.com/fwojciec/rentwatch/goquery"
	rwhttp "github.com/fwojciec/rentwatch/http"
	"github.com/fwojciec/rentwatch/re2"
	"github.com/fwojciec/rentwatch/rod"
	rwslog "github.com/fwojciec/rentwatch/slog"
	"github.com/fwojciec/rentwatch/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin is read by "extract --file -".
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ListingService rentwatch.ListingService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
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
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(stderr, false),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("rentwatch"),
		kong.Description("Watch rental listing sites for new ads."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'rentwatch --help' to see available commands")
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
	deps.Logger = newLogger(stderr, cli.Verbose)

	registry, err := newRegistry()
	if err != nil {
		return err
	}
	deps.Registry = registry
	deps.Dispatcher = rwslog.NewLoggingDispatcher(
		extract.NewDispatcher(registry, rentwatch.SystemClock{}),
		deps.Logger,
	)

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}

	switch strings.Fields(kongCtx.Command())[0] {
	case "watch":
		cfg, err := cli.Watch.config()
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", rentwatch.ErrorMessage(err))
			return err
		}
		deps.Config = cfg
		if cli.DB == "" && cfg.DB != "" {
			dbPath = cfg.DB
		}

		if !cli.Watch.NoStore {
			if err := m.openDB(dbPath, stderr); err != nil {
				return err
			}
			defer m.Close()
			deps.Listings = m.ListingService
		}

		deps.Fetcher = rwslog.NewLoggingFetcher(
			rwhttp.NewFetcher(rwhttp.WithTimeout(cfg.Timeout), rwhttp.WithUserAgent(cfg.UserAgent)),
			deps.Logger,
		)
		if cfg.needsBrowser() {
			browser, err := startBrowser(cfg.Timeout, cfg.UserAgent, stderr)
			if err != nil {
				return err
			}
			defer browser.Close()
			deps.BrowserFetcher = rwslog.NewLoggingFetcher(browser, deps.Logger)
		}

	case "extract":
		if cli.Extract.File != "" {
			break
		}
		if cli.Extract.Browser {
			browser, err := startBrowser(rod.DefaultFetchTimeout, rwhttp.DefaultUserAgent, stderr)
			if err != nil {
				return err
			}
			defer browser.Close()
			deps.Fetcher = rwslog.NewLoggingFetcher(browser, deps.Logger)
		} else {
			deps.Fetcher = rwslog.NewLoggingFetcher(rwhttp.NewFetcher(), deps.Logger)
		}

	case "history":
		if err := m.openDB(dbPath, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Listings = m.ListingService
	}

	err = kongCtx.Run(deps)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set RENTWATCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	if m.ListingService == nil {
		m.ListingService = sqlite.NewListingService(m.DB)
	}
	return nil
}

func startBrowser(timeout time.Duration, userAgent string, stderr io.Writer) (*rod.Fetcher, error) {
	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(timeout), rod.WithUserAgent(userAgent))
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return fetcher, nil
}

// errorText returns the message of an application error, followed by the
// collaborator error it carries, if any.
func errorText(err error) string {
	var e *rentwatch.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return rentwatch.ErrorMessage(err)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newRegistry registers the extraction rule of every supported source.
func newRegistry() (*extract.Registry, error) {
	rules := goquery.NewRules()
	rules = append(rules, re2.NewWohnungsBoerseRule())
	return extract.NewRegistry(rules...)
}

func defaultDBPath() string {
	if path := os.Getenv("RENTWATCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "rentwatch.db"
	}
	dir := filepath.Join(home, ".rentwatch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "rentwatch.db")
}
