// Package extract maps sources to their extraction rules and assembles
// canonical listing records.
package extract

import (
	"sort"

	"github.com/fwojciec/rentwatch"
)

// Registry maps sources to extraction rules. A Registry is built once by
// NewRegistry and never modified afterwards, so it is safe for concurrent use.
type Registry struct {
	rules map[rentwatch.Source]rentwatch.Rule
}

// NewRegistry creates a Registry holding the given rules.
// Returns EINVALID if a rule has no source or two rules share a source.
func NewRegistry(rules ...rentwatch.Rule) (*Registry, error) {
	r := &Registry{rules: make(map[rentwatch.Source]rentwatch.Rule, len(rules))}
	for _, rule := range rules {
		source := rule.Source()
		if source == "" {
			return nil, rentwatch.Errorf(rentwatch.EINVALID, "rule without source")
		}
		if _, ok := r.rules[source]; ok {
			return nil, rentwatch.Errorf(rentwatch.EINVALID, "duplicate rule for source %q", source)
		}
		r.rules[source] = rule
	}
	return r, nil
}

// Lookup returns the rule registered for source.
func (r *Registry) Lookup(source rentwatch.Source) (rentwatch.Rule, bool) {
	rule, ok := r.rules[source]
	return rule, ok
}

// Sources returns the registered sources in lexical order.
func (r *Registry) Sources() []rentwatch.Source {
	sources := make([]rentwatch.Source, 0, len(r.rules))
	for s := range r.rules {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}
