package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Registry       *extract.Registry
	Dispatcher     rentwatch.Dispatcher
	Fetcher        rentwatch.Fetcher
	BrowserFetcher rentwatch.Fetcher
	Listings       rentwatch.ListingService
	Config         *Config
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log every fetch and extraction to stderr"`
	DB      string `type:"path" help:"SQLite database path (default $RENTWATCH_DB or ~/.rentwatch/rentwatch.db)"`

	Sources SourcesCmd `cmd:"" help:"List supported sources"`
	Extract ExtractCmd `cmd:"" help:"Extract the newest listing from a search page"`
	Watch   WatchCmd   `cmd:"" help:"Poll search pages and report new listings"`
	History HistoryCmd `cmd:"" help:"Show stored listings"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source  string `arg:"" help:"Source name (see 'rentwatch sources')"`
	URL     string `arg:"" optional:"" help:"Search page URL"`
	File    string `short:"f" help:"Read the page from a file instead of fetching it ('-' for stdin)"`
	Browser bool   `short:"b" help:"Render the page with a headless browser"`
	JSON    bool   `help:"Print the listing as JSON"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Config      string        `short:"c" type:"path" help:"YAML config file"`
	Target      []string      `short:"t" name:"target" sep:"none" help:"Watch SOURCE=URL (repeatable)"`
	Interval    time.Duration `short:"i" help:"Time between cycles (default 10m)"`
	Concurrency int           `help:"Targets checked at once"`
	Rate        float64       `help:"Requests per second per host"`
	Output      string        `short:"o" type:"path" help:"Also write new listings as markdown files to this directory"`
	Once        bool          `help:"Run a single cycle and exit"`
	NoStore     bool          `help:"Remember seen listings in memory only"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Source string `arg:"" optional:"" help:"Only show listings from this source"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of listings"`
	Offset int    `help:"Skip this many listings"`
	JSON   bool   `help:"Print listings as JSON"`
	Clear  bool   `help:"Delete stored listings for the source"`
	Force  bool   `help:"Confirm --clear"`
}
