package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/rentwatch"
)

// Ensure LoggingDispatcher implements rentwatch.Dispatcher.
var _ rentwatch.Dispatcher = (*LoggingDispatcher)(nil)

// LoggingDispatcher wraps a Dispatcher with logging.
//
// Content-shape failures are logged at info level. Anything else,
// including an unknown source, is logged as an error.
type LoggingDispatcher struct {
	next   rentwatch.Dispatcher
	logger *slog.Logger
}

// NewLoggingDispatcher creates a new LoggingDispatcher.
func NewLoggingDispatcher(next rentwatch.Dispatcher, logger *slog.Logger) *LoggingDispatcher {
	return &LoggingDispatcher{next: next, logger: logger}
}

// Dispatch logs the extraction outcome and delegates to the wrapped dispatcher.
func (d *LoggingDispatcher) Dispatch(source rentwatch.Source, content string) (listing *rentwatch.Listing, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"source", source,
			"bytes", len(content),
			"duration", time.Since(begin),
		}
		switch {
		case err == nil:
			d.logger.Info("extract", append(attrs, "url", listing.URL)...)
		case rentwatch.IsRetryable(err):
			d.logger.Info("extract", append(attrs, "code", rentwatch.ErrorCode(err), "err", err)...)
		default:
			d.logger.Error("extract", append(attrs, "code", rentwatch.ErrorCode(err), "err", err)...)
		}
	}(time.Now())
	return d.next.Dispatch(source, content)
}
