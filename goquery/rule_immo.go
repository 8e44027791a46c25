package goquery

import (
	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/normalize"
)

// Default bases for the Immowelt, ImmoScout24 and Immonet listing links.
const (
	ImmoweltBaseURL    = "http://www.immowelt.de"
	ImmoScout24BaseURL = "http://www.immobilienscout24.de"
	ImmonetBaseURL     = "http://www.immonet.de"
)

// NewImmoweltRule creates the Immowelt rule.
func NewImmoweltRule(opts ...Option) *Rule {
	return NewRule(immowelt{}, opts...)
}

// NewImmoScout24Rule creates the ImmoScout24 rule.
func NewImmoScout24Rule(opts ...Option) *Rule {
	return NewRule(immoScout24{}, opts...)
}

// NewImmonetRule creates the Immonet rule.
func NewImmonetRule(opts ...Option) *Rule {
	return NewRule(immonet{}, opts...)
}

type immowelt struct{}

func (immowelt) Source() rentwatch.Source { return rentwatch.SourceImmowelt }

func (immowelt) BaseURL() string { return ImmoweltBaseURL }

func (immowelt) Locate(doc *Document) *Node {
	return doc.FindFirst("div", Class("divObject  listitem_new_wrap"))
}

func (s immowelt) ExtractRaw(offer *Node) (*RawFields, error) {
	src := s.Source()

	link, err := child(offer, src, "url", "a")
	if err != nil {
		return nil, err
	}
	href, err := attr(link, src, "url", "href")
	if err != nil {
		return nil, err
	}
	title, err := text(offer, src, "title", "h3")
	if err != nil {
		return nil, err
	}
	rent, err := text(offer, src, "rent", "div", Class("hardfact"))
	if err != nil {
		return nil, err
	}
	location, err := child(offer, src, "location", "div", Class("location location_exact"))
	if err != nil {
		return nil, err
	}

	return &RawFields{
		Title:    title,
		Href:     href,
		Rent:     rent,
		Location: location.JoinedText(" "),
	}, nil
}

func (immowelt) Normalize(raw *RawFields) *rentwatch.Fields {
	return &rentwatch.Fields{
		Title:    normalize.CollapseSpace(raw.Title),
		Rent:     normalize.CollapseSpace(raw.Rent),
		Location: normalize.CollapseSpace(raw.Location),
	}
}

type immoScout24 struct{}

func (immoScout24) Source() rentwatch.Source { return rentwatch.SourceImmoScout24 }

func (immoScout24) BaseURL() string { return ImmoScout24BaseURL }

func (immoScout24) Locate(doc *Document) *Node {
	return doc.FindFirst("div", Class("resultlist_entry_data"))
}

func (s immoScout24) ExtractRaw(entry *Node) (*RawFields, error) {
	src := s.Source()

	link, err := child(entry, src, "url", "a")
	if err != nil {
		return nil, err
	}
	href, err := attr(link, src, "url", "href")
	if err != nil {
		return nil, err
	}
	title, err := attr(link, src, "title", "title")
	if err != nil {
		return nil, err
	}
	rent, err := text(entry, src, "rent", "dd", Class("value"))
	if err != nil {
		return nil, err
	}
	street, err := child(entry, src, "location", "span", Class("street"))
	if err != nil {
		return nil, err
	}

	return &RawFields{
		Title:    title,
		Href:     href,
		Rent:     rent,
		Location: street.JoinedText(" "),
	}, nil
}

// Normalize keeps only the numeric prefix of the rent ("650,00 €" -> "650,00").
func (immoScout24) Normalize(raw *RawFields) *rentwatch.Fields {
	return &rentwatch.Fields{
		Title:    normalize.CollapseSpace(raw.Title),
		Rent:     normalize.FirstToken(raw.Rent),
		Location: normalize.CollapseSpace(raw.Location),
	}
}

type immonet struct{}

func (immonet) Source() rentwatch.Source { return rentwatch.SourceImmonet }

func (immonet) BaseURL() string { return ImmonetBaseURL }

func (immonet) Locate(doc *Document) *Node {
	return doc.FindFirst("div", Class("selListItem"))
}

func (s immonet) ExtractRaw(item *Node) (*RawFields, error) {
	src := s.Source()

	link, err := child(item, src, "url", "a")
	if err != nil {
		return nil, err
	}
	href, err := attr(link, src, "url", "href")
	if err != nil {
		return nil, err
	}
	title, err := attr(link, src, "title", "title")
	if err != nil {
		return nil, err
	}
	rent, err := text(item, src, "rent", "span", Class("fsLarge"))
	if err != nil {
		return nil, err
	}
	location, err := child(item, src, "location", "p", Class("fsSmall"))
	if err != nil {
		return nil, err
	}

	return &RawFields{
		Title:    title,
		Href:     href,
		Rent:     rent,
		Location: location.JoinedText(""),
	}, nil
}

func (immonet) Normalize(raw *RawFields) *rentwatch.Fields {
	return &rentwatch.Fields{
		Title:    normalize.CollapseSpace(raw.Title),
		Rent:     normalize.CollapseSpace(raw.Rent),
		Location: normalize.CollapseSpace(raw.Location),
	}
}
