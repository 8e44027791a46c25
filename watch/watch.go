// Package watch polls search pages and reports listings that were not
// seen before.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of targets checked at once.
const DefaultConcurrency = 4

// Watcher checks targets for their newest listing.
//
// Listings, Notifier, RateLimiter, Seen, BrowserFetcher and Logger are
// optional. Without Listings, a listing is new when Seen has not recorded
// it; without Seen either, every extracted listing is new.
type Watcher struct {
	Fetcher        rentwatch.Fetcher
	BrowserFetcher rentwatch.Fetcher
	Dispatcher     rentwatch.Dispatcher
	Listings       rentwatch.ListingService
	Notifier       rentwatch.Notifier
	RateLimiter    rentwatch.DomainLimiter
	Seen           *bloom.Filter
	Concurrency    int
	RetryDelays    Backoff
	Logger         *slog.Logger
}

// Outcome classifies the result of checking one target.
type Outcome int

const (
	// OutcomeNew means the newest listing had not been seen before.
	OutcomeNew Outcome = iota
	// OutcomeUnchanged means the newest listing was already known.
	OutcomeUnchanged
	// OutcomeSkipped means the page did not have the expected shape.
	OutcomeSkipped
	// OutcomeFailed means fetching, storing or notifying failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNew:
		return "new"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Check is the outcome of checking one target.
type Check struct {
	Target  rentwatch.Target
	Outcome Outcome
	Listing *rentwatch.Listing
	Err     error
}

// Result summarizes one cycle over all targets.
type Result struct {
	New       int
	Unchanged int
	Skipped   int
	Failed    int

	// Checks holds one entry per target, in target order.
	Checks []Check
}

// NewListings returns the listings reported as new, in target order.
func (r *Result) NewListings() []*rentwatch.Listing {
	var listings []*rentwatch.Listing
	for _, c := range r.Checks {
		if c.Outcome == OutcomeNew {
			listings = append(listings, c.Listing)
		}
	}
	return listings
}

// ProgressFunc is called once per checked target as checks complete.
// Calls are never concurrent.
type ProgressFunc func(completed, total int, check Check)

type indexedCheck struct {
	position int
	check    Check
}

// RunCycle checks every target once. Failures of individual targets are
// recorded in the result; the error is non-nil only when ctx is done.
func (w *Watcher) RunCycle(ctx context.Context, targets []rentwatch.Target, progress ProgressFunc) (*Result, error) {
	begin := time.Now()

	concurrency := w.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	checkCh := make(chan indexedCheck, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, target := range targets {
			g.Go(func() error {
				checkCh <- indexedCheck{position: i, check: w.check(gctx, target)}
				return nil
			})
		}
		_ = g.Wait()
		close(checkCh)
	}()

	result := &Result{Checks: make([]Check, len(targets))}
	completed := 0
	for ic := range checkCh {
		completed++
		result.Checks[ic.position] = ic.check
		switch ic.check.Outcome {
		case OutcomeNew:
			result.New++
		case OutcomeUnchanged:
			result.Unchanged++
		case OutcomeSkipped:
			result.Skipped++
		case OutcomeFailed:
			result.Failed++
		}
		if progress != nil {
			progress(completed, len(targets), ic.check)
		}
	}

	if w.Logger != nil {
		w.Logger.Info("cycle",
			"targets", len(targets),
			"new", result.New,
			"unchanged", result.Unchanged,
			"skipped", result.Skipped,
			"failed", result.Failed,
			"duration", time.Since(begin),
		)
	}

	return result, ctx.Err()
}

// Run calls RunCycle immediately and then every interval until ctx is done.
// It returns ctx.Err().
func (w *Watcher) Run(ctx context.Context, targets []rentwatch.Target, interval time.Duration, progress ProgressFunc) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := w.RunCycle(ctx, targets, progress); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// check fetches, extracts and classifies the newest listing of one target.
func (w *Watcher) check(ctx context.Context, target rentwatch.Target) Check {
	c := Check{Target: target}

	html, err := w.fetch(ctx, target)
	if err != nil {
		c.Outcome, c.Err = OutcomeFailed, rentwatch.Upstream(target.Source, err)
		return c
	}

	listing, err := w.Dispatcher.Dispatch(target.Source, html)
	if err != nil {
		c.Err = err
		if rentwatch.IsRetryable(err) {
			c.Outcome = OutcomeSkipped
		} else {
			c.Outcome = OutcomeFailed
		}
		return c
	}
	c.Listing = listing

	isNew, err := w.remember(ctx, listing)
	if err != nil {
		c.Outcome, c.Err = OutcomeFailed, err
		return c
	}
	if !isNew {
		c.Outcome = OutcomeUnchanged
		return c
	}

	if w.Notifier != nil {
		if err := w.Notifier.Notify(ctx, listing); err != nil {
			c.Outcome, c.Err = OutcomeFailed, fmt.Errorf("notify: %w", err)
			if ferr := w.forget(ctx, listing); ferr != nil {
				c.Err = fmt.Errorf("%w (forget: %v)", c.Err, ferr)
			}
			return c
		}
	}
	if w.Seen != nil {
		w.Seen.Add(listing.Source, listing.URL)
	}
	c.Outcome = OutcomeNew
	return c
}

func (w *Watcher) fetch(ctx context.Context, target rentwatch.Target) (string, error) {
	fetcher := w.Fetcher
	if target.Browser && w.BrowserFetcher != nil {
		fetcher = w.BrowserFetcher
	}

	host := ""
	if u, err := url.Parse(target.URL); err == nil {
		host = u.Host
	}

	// Every attempt is a request, so retries are paced too.
	attempt := func(ctx context.Context) (string, error) {
		if w.RateLimiter != nil {
			if err := w.RateLimiter.Wait(ctx, host); err != nil {
				return "", err
			}
		}
		return fetcher.Fetch(ctx, target.URL)
	}

	backoff := w.RetryDelays
	if backoff == nil {
		backoff = DefaultBackoff()
	}

	var onRetry func(int, error)
	if w.Logger != nil {
		onRetry = func(next int, err error) {
			w.Logger.Warn("retry", "target", target.Label(), "url", target.URL, "attempt", next, "err", err)
		}
	}
	return backoff.Do(ctx, attempt, onRetry)
}

// remember reports whether listing is new and, when it is, stores it.
// The filter is only marked after a successful notification, so a
// listing whose notification failed is reported again next cycle.
// With a store, a filter hit is confirmed there since the filter has
// false positives.
func (w *Watcher) remember(ctx context.Context, listing *rentwatch.Listing) (bool, error) {
	seen := w.Seen != nil && w.Seen.Test(listing.Source, listing.URL)

	if w.Listings == nil {
		return !seen, nil
	}

	if seen {
		found, err := w.Listings.FindListings(ctx, rentwatch.ListingFilter{
			Source: &listing.Source,
			URL:    &listing.URL,
			Limit:  1,
		})
		if err != nil {
			return false, err
		}
		if len(found) > 0 {
			return false, nil
		}
	}

	err := w.Listings.CreateListing(ctx, listing)
	switch {
	case err == nil:
		return true, nil
	case rentwatch.ErrorCode(err) == rentwatch.ECONFLICT:
		if w.Seen != nil {
			w.Seen.Add(listing.Source, listing.URL)
		}
		return false, nil
	default:
		return false, err
	}
}

// forget undoes the store write of remember after a failed notification.
func (w *Watcher) forget(ctx context.Context, listing *rentwatch.Listing) error {
	if w.Listings == nil || listing.ID == "" {
		return nil
	}
	err := w.Listings.DeleteListing(ctx, listing.ID)
	if rentwatch.ErrorCode(err) == rentwatch.ENOTFOUND {
		return nil
	}
	if err == nil {
		listing.ID = ""
	}
	return err
}
