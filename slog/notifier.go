package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rentwatch"
)

// Ensure LoggingNotifier implements rentwatch.Notifier.
var _ rentwatch.Notifier = (*LoggingNotifier)(nil)

// LoggingNotifier wraps a Notifier with logging.
type LoggingNotifier struct {
	next   rentwatch.Notifier
	logger *slog.Logger
}

// NewLoggingNotifier creates a new LoggingNotifier.
func NewLoggingNotifier(next rentwatch.Notifier, logger *slog.Logger) *LoggingNotifier {
	return &LoggingNotifier{next: next, logger: logger}
}

// Notify logs the announced listing and delegates to the wrapped notifier.
func (n *LoggingNotifier) Notify(ctx context.Context, listing *rentwatch.Listing) (err error) {
	defer func(begin time.Time) {
		n.logger.Info("notify",
			"source", listing.Source,
			"url", listing.URL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Notify(ctx, listing)
}
