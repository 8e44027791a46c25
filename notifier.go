package rentwatch

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Notifier reports newly seen listings.
type Notifier interface {
	Notify(ctx context.Context, listing *Listing) error
}

var _ Notifier = (*WriterNotifier)(nil)

// WriterNotifier writes formatted listings to an io.Writer.
// WriterNotifier is safe for concurrent use.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier creates a new WriterNotifier writing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify writes the listing followed by a blank line.
func (n *WriterNotifier) Notify(_ context.Context, listing *Listing) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	_, err := fmt.Fprintf(n.w, "%s\n\n", FormatListing(listing))
	return err
}

// MultiNotifier fans a listing out to every notifier in order and
// returns the first error.
type MultiNotifier []Notifier

// Notify calls each notifier, stopping at the first failure.
func (m MultiNotifier) Notify(ctx context.Context, listing *Listing) error {
	for _, n := range m {
		if err := n.Notify(ctx, listing); err != nil {
			return err
		}
	}
	return nil
}
