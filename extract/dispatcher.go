package extract

import (
	"github.com/fwojciec/rentwatch"
)

var _ rentwatch.Dispatcher = (*Dispatcher)(nil)

// Dispatcher selects the rule for a source from a Registry and assembles
// the resulting listing.
type Dispatcher struct {
	registry  *Registry
	assembler *Assembler
}

// NewDispatcher creates a Dispatcher over registry stamping times from clock.
func NewDispatcher(registry *Registry, clock rentwatch.Clock) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		assembler: &Assembler{Clock: clock},
	}
}

// Dispatch extracts the newest listing for source from content.
// An unregistered source yields EUNKNOWNSOURCE without looking at content.
func (d *Dispatcher) Dispatch(source rentwatch.Source, content string) (*rentwatch.Listing, error) {
	rule, ok := d.registry.Lookup(source)
	if !ok {
		return nil, rentwatch.UnknownSource(source)
	}

	fields, err := rule.Extract(content)
	if err != nil {
		return nil, err
	}

	return d.assembler.Assemble(source, fields), nil
}
