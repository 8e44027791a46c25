package mock

import (
	"time"

	"github.com/fwojciec/rentwatch"
)

var _ rentwatch.Rule = (*Rule)(nil)

// Rule is a mock implementation of rentwatch.Rule.
type Rule struct {
	SourceFn  func() rentwatch.Source
	ExtractFn func(content string) (*rentwatch.Fields, error)
}

func (r *Rule) Source() rentwatch.Source {
	return r.SourceFn()
}

func (r *Rule) Extract(content string) (*rentwatch.Fields, error) {
	return r.ExtractFn(content)
}

var _ rentwatch.Dispatcher = (*Dispatcher)(nil)

// Dispatcher is a mock implementation of rentwatch.Dispatcher.
type Dispatcher struct {
	DispatchFn func(source rentwatch.Source, content string) (*rentwatch.Listing, error)
}

func (d *Dispatcher) Dispatch(source rentwatch.Source, content string) (*rentwatch.Listing, error) {
	return d.DispatchFn(source, content)
}

var _ rentwatch.Clock = (*Clock)(nil)

// Clock is a mock implementation of rentwatch.Clock.
type Clock struct {
	NowFn func() time.Time
}

func (c *Clock) Now() time.Time {
	return c.NowFn()
}
