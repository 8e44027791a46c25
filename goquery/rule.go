package goquery

import (
	"github.com/fwojciec/rentwatch"
)

// RawFields holds the values a Strategy pulls out of a listing container
// before normalization.
type RawFields struct {
	Title    string
	Href     string
	Rent     string
	Location string
}

// Strategy is the source-specific part of a tree rule.
type Strategy interface {
	// Source returns the source this strategy handles.
	Source() rentwatch.Source

	// BaseURL returns the URL hrefs are resolved against.
	BaseURL() string

	// Locate returns the container of the most recent listing, or nil.
	// The newest listing is always first in document order.
	Locate(doc *Document) *Node

	// ExtractRaw pulls the raw fields out of the container.
	// Returns EFIELDNOTFOUND when a required element or attribute is missing.
	ExtractRaw(container *Node) (*RawFields, error)

	// Normalize cleans title, rent and location for the source's formatting.
	Normalize(raw *RawFields) *rentwatch.Fields
}

var _ rentwatch.Rule = (*Rule)(nil)

// Rule runs a Strategy over parsed markup: locate the container, extract raw
// fields, normalize them, and resolve the href against the base URL.
type Rule struct {
	strategy Strategy
	baseURL  string
}

// Option configures a Rule.
type Option func(*Rule)

// WithBaseURL overrides the URL relative hrefs are resolved against.
func WithBaseURL(u string) Option {
	return func(r *Rule) {
		r.baseURL = u
	}
}

// NewRule creates a Rule for the given strategy.
func NewRule(s Strategy, opts ...Option) *Rule {
	r := &Rule{strategy: s, baseURL: s.BaseURL()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Source returns the source handled by the rule.
func (r *Rule) Source() rentwatch.Source {
	return r.strategy.Source()
}

// Extract parses content and returns the newest listing's fields.
func (r *Rule) Extract(content string) (*rentwatch.Fields, error) {
	source := r.strategy.Source()

	doc, err := NewDocument(content)
	if err != nil {
		return nil, rentwatch.Upstream(source, err)
	}

	container := r.strategy.Locate(doc)
	if container == nil {
		return nil, rentwatch.ContainerNotFound(source)
	}

	raw, err := r.strategy.ExtractRaw(container)
	if err != nil {
		return nil, err
	}

	link, err := rentwatch.ResolveURL(r.baseURL, raw.Href)
	if err != nil {
		return nil, rentwatch.FieldNotFound(source, "url")
	}

	fields := r.strategy.Normalize(raw)
	fields.URL = link
	return fields, nil
}

// NewRules returns the rules for every tree-based source.
func NewRules(opts ...Option) []rentwatch.Rule {
	return []rentwatch.Rule{
		NewEbayRule(opts...),
		NewWG1ZimmerRule(opts...),
		NewWGWohnungRule(opts...),
		NewImmoweltRule(opts...),
		NewImmoScout24Rule(opts...),
		NewImmonetRule(opts...),
	}
}

// text returns the text of the first matching descendant of n.
func text(n *Node, source rentwatch.Source, field, tag string, attrs ...Attr) (string, error) {
	el := n.FindFirst(tag, attrs...)
	if el == nil {
		return "", rentwatch.FieldNotFound(source, field)
	}
	return el.Text(), nil
}

// attr returns the named attribute of n.
func attr(n *Node, source rentwatch.Source, field, name string) (string, error) {
	v, ok := n.Attr(name)
	if !ok {
		return "", rentwatch.FieldNotFound(source, field)
	}
	return v, nil
}

// child returns the first matching descendant of n.
func child(n *Node, source rentwatch.Source, field, tag string, attrs ...Attr) (*Node, error) {
	el := n.FindFirst(tag, attrs...)
	if el == nil {
		return nil, rentwatch.FieldNotFound(source, field)
	}
	return el, nil
}
