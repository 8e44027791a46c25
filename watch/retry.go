package watch

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/rentwatch"
)

// Backoff lists the pauses between attempts. An empty Backoff means one
// attempt and no retries.
type Backoff []time.Duration

// DefaultBackoff waits 1s, 2s and 4s between four attempts.
func DefaultBackoff() Backoff {
	return Backoff{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Do calls attempt until it succeeds, the backoff is used up, or the error
// is permanent. onRetry, if set, is called with the number of the next
// attempt before each pause. The last error is returned.
//
// Context errors and EINVALID (a closed fetcher, a malformed URL) are
// permanent.
func (b Backoff) Do(ctx context.Context, attempt func(context.Context) (string, error), onRetry func(next int, err error)) (string, error) {
	for i := 0; ; i++ {
		html, err := attempt(ctx)
		if err == nil {
			return html, nil
		}
		if i == len(b) || permanent(err) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if onRetry != nil {
			onRetry(i+2, err)
		}

		timer := time.NewTimer(b[i])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}

func permanent(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		rentwatch.ErrorCode(err) == rentwatch.EINVALID
}
