package goquery

import (
	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/normalize"
)

// EbayBaseURL is the default base for eBay Kleinanzeigen listing links.
const EbayBaseURL = "https://www.kleinanzeigen.de/"

// NewEbayRule creates the eBay Kleinanzeigen rule.
func NewEbayRule(opts ...Option) *Rule {
	return NewRule(ebay{}, opts...)
}

// ebay reads the first article of the search result list.
type ebay struct{}

func (ebay) Source() rentwatch.Source { return rentwatch.SourceEbay }

func (ebay) BaseURL() string { return EbayBaseURL }

func (ebay) Locate(doc *Document) *Node {
	results := doc.FindFirst("div", ID("srchrslt-content"))
	if results == nil {
		return nil
	}
	return results.FindFirst("article", Class("aditem"))
}

func (s ebay) ExtractRaw(article *Node) (*RawFields, error) {
	src := s.Source()

	middle, err := child(article, src, "title", "div", Class("aditem-main--middle"))
	if err != nil {
		return nil, err
	}
	link, err := child(middle, src, "url", "a")
	if err != nil {
		return nil, err
	}
	href, err := attr(link, src, "url", "href")
	if err != nil {
		return nil, err
	}
	rent, err := text(middle, src, "rent", "p", Class("aditem-main--middle--price"))
	if err != nil {
		return nil, err
	}
	location, err := text(article, src, "location", "div", Class("aditem-main--top--left"))
	if err != nil {
		return nil, err
	}

	return &RawFields{
		Title:    link.Text(),
		Href:     href,
		Rent:     rent,
		Location: location,
	}, nil
}

func (ebay) Normalize(raw *RawFields) *rentwatch.Fields {
	return &rentwatch.Fields{
		Title:    normalize.CollapseSpace(raw.Title),
		Rent:     normalize.CollapseSpace(raw.Rent),
		Location: normalize.CollapseSpace(raw.Location),
	}
}
