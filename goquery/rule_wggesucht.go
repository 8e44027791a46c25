package goquery

import (
	"strings"

	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/normalize"
)

// WGGesuchtBaseURL is the default base for WG-Gesucht listing links.
const WGGesuchtBaseURL = "http://www.wg-gesucht.de/"

// NewWG1ZimmerRule creates the WG-Gesucht shared-room rule.
func NewWG1ZimmerRule(opts ...Option) *Rule {
	return NewRule(wg1Zimmer{}, opts...)
}

// NewWGWohnungRule creates the WG-Gesucht apartment rule.
func NewWGWohnungRule(opts ...Option) *Rule {
	return NewRule(wgWohnung{}, opts...)
}

// wg1Zimmer reads the first offer card of the room search.
type wg1Zimmer struct{}

func (wg1Zimmer) Source() rentwatch.Source { return rentwatch.SourceWG1Zimmer }

func (wg1Zimmer) BaseURL() string { return WGGesuchtBaseURL }

func (wg1Zimmer) Locate(doc *Document) *Node {
	return doc.FindFirst("div", Class("wgg_card offer_list_item"))
}

func (s wg1Zimmer) ExtractRaw(card *Node) (*RawFields, error) {
	src := s.Source()

	body, err := child(card, src, "card_body", "div", Class("card_body"))
	if err != nil {
		return nil, err
	}
	link, err := child(body, src, "url", "a")
	if err != nil {
		return nil, err
	}
	href, err := attr(link, src, "url", "href")
	if err != nil {
		return nil, err
	}
	heading, err := child(body, src, "title", "h3")
	if err != nil {
		return nil, err
	}
	title, err := attr(heading, src, "title", "title")
	if err != nil {
		return nil, err
	}
	rent, err := text(body, src, "rent", "b")
	if err != nil {
		return nil, err
	}
	row, err := child(body, src, "location", "div", Class("col-xs-11"))
	if err != nil {
		return nil, err
	}
	location, err := text(row, src, "location", "span")
	if err != nil {
		return nil, err
	}

	return &RawFields{
		Title:    title,
		Href:     href,
		Rent:     rent,
		Location: location,
	}, nil
}

// Normalize takes the rent with the three-token rule and the location from
// the segment after the first "|" ("1-Zimmer | Berlin Mitte | Straße"),
// keeping its first two tokens.
func (wg1Zimmer) Normalize(raw *RawFields) *rentwatch.Fields {
	segments := strings.Split(strings.TrimSpace(raw.Location), "|")
	segment := segments[0]
	if len(segments) > 1 {
		segment = segments[1]
	}

	return &rentwatch.Fields{
		Title:    normalize.CollapseSpace(raw.Title),
		Rent:     normalize.TailOrJoin(raw.Rent),
		Location: normalize.FirstTokens(segment, 2),
	}
}

// wgWohnung reads the first ad wrapper of the apartment search.
type wgWohnung struct{}

func (wgWohnung) Source() rentwatch.Source { return rentwatch.SourceWGWohnung }

func (wgWohnung) BaseURL() string { return WGGesuchtBaseURL }

func (wgWohnung) Locate(doc *Document) *Node {
	return doc.FindFirst("div", Class("list-details-ad-wrapper CLR "))
}

func (s wgWohnung) ExtractRaw(ad *Node) (*RawFields, error) {
	src := s.Source()

	heading, err := child(ad, src, "title", "h2")
	if err != nil {
		return nil, err
	}
	link, err := child(heading, src, "url", "a")
	if err != nil {
		return nil, err
	}
	href, err := attr(link, src, "url", "href")
	if err != nil {
		return nil, err
	}
	price, err := child(ad, src, "rent", "strong", Class("list-details-ad-price"))
	if err != nil {
		return nil, err
	}
	rent, err := text(price, src, "rent", "a")
	if err != nil {
		return nil, err
	}
	location, err := text(ad, src, "location", "p")
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

func (wgWohnung) Normalize(raw *RawFields) *rentwatch.Fields {
	return &rentwatch.Fields{
		Title:    normalize.CollapseSpace(raw.Title),
		Rent:     normalize.TailOrJoin(raw.Rent),
		Location: normalize.FirstLineOrJoin(raw.Location),
	}
}
