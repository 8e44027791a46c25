package main

import (
	"fmt"

	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/bloom"
	"github.com/fwojciec/rentwatch/fs"
	rwslog "github.com/fwojciec/rentwatch/slog"
	"github.com/fwojciec/rentwatch/watch"
)

// Seen filter sizing for a long-running watch.
const (
	seenExpectedListings  = 100000
	seenFalsePositiveRate = 0.001
)

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	notifiers := rentwatch.MultiNotifier{rentwatch.NewWriterNotifier(deps.Stdout)}
	if cfg.Output != "" {
		notifiers = append(notifiers, fs.NewWriter(cfg.Output))
	}

	w := &watch.Watcher{
		Fetcher:        deps.Fetcher,
		BrowserFetcher: deps.BrowserFetcher,
		Dispatcher:     deps.Dispatcher,
		Listings:       deps.Listings,
		Notifier:       rwslog.NewLoggingNotifier(notifiers, deps.Logger),
		RateLimiter:    watch.NewDomainLimiter(cfg.Rate),
		Seen:           bloom.NewFilter(seenExpectedListings, seenFalsePositiveRate),
		Concurrency:    cfg.Concurrency,
		Logger:         deps.Logger,
	}

	progress := func(completed, total int, check watch.Check) {
		if check.Outcome == watch.OutcomeFailed {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", check.Target.Label(), errorText(check.Err))
		}
	}

	if !c.Once {
		return w.Run(deps.Ctx, cfg.Targets, cfg.Interval, progress)
	}

	result, err := w.RunCycle(deps.Ctx, cfg.Targets, progress)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stderr, "%d new, %d unchanged, %d skipped, %d failed\n",
		result.New, result.Unchanged, result.Skipped, result.Failed)
	return nil
}
