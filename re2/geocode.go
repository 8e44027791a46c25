package re2

import (
	"github.com/fwojciec/rentwatch"
	"github.com/fwojciec/rentwatch/normalize"
	"github.com/wasilibs/go-re2"
)

// Literal positions inside the geocode call. The call carries no field names:
// if the site reorders its arguments, extraction returns wrong values instead
// of failing. Only the number of literals is checked.
const (
	PosAddress = 0
	PosRooms   = 1
	PosSize    = 2
	PosRent    = 3
	PosTitle   = 6
	PosZIP     = 7
	PosCity    = 8
)

var (
	// geocodeCall spans lines and ends at the first ");" or "});" after the call.
	geocodeCall = re2.MustCompile(`(?s)geocode\(.*?\)\s*;`)

	// numericArg matches an unquoted integer argument such as ", 12345,".
	numericArg = re2.MustCompile(`,\s*(\d+)\s*,`)

	// quotedLiteral matches a single-quoted string literal on one line.
	quotedLiteral = re2.MustCompile(`'[^'\n]*'`)
)

// GeocodeCall holds the arguments of the first geocode call in a script.
type GeocodeCall struct {
	// Raw is the matched call text.
	Raw string

	// ID is the first integer argument outside quotes, or "" if there is none.
	ID string

	// Literals are the quoted string arguments in call order, without quotes.
	Literals []string
}

// Literal returns the literal at position i, or "" if the call is shorter.
func (c *GeocodeCall) Literal(i int) string {
	if i < 0 || i >= len(c.Literals) {
		return ""
	}
	return c.Literals[i]
}

// ParseGeocodeCall isolates the first geocode call in doc and tokenizes it.
// Returns false when the document contains no call.
func ParseGeocodeCall(doc *Document) (*GeocodeCall, bool) {
	calls := doc.Search(geocodeCall)
	if len(calls) == 0 {
		return nil, false
	}
	raw := calls[0]
	call := NewDocument(raw)

	c := &GeocodeCall{Raw: raw}
	// Literals are blanked so digits inside an address are not taken for the ID.
	unquoted := NewDocument(quotedLiteral.ReplaceAllString(raw, "''"))
	if ids := unquoted.SearchSubmatch(numericArg); len(ids) > 0 {
		c.ID = ids[0][1]
	}
	for _, lit := range call.Search(quotedLiteral) {
		c.Literals = append(c.Literals, normalize.StripQuotes(lit))
	}
	return c, true
}

// WohnungsBoerseBaseURL is the default base for WohnungsBoerse detail pages.
const WohnungsBoerseBaseURL = "http://www.wohnungsboerse.net/immodetail/"

var _ rentwatch.Rule = (*WohnungsBoerseRule)(nil)

// WohnungsBoerseRule extracts the listing passed to the map geocoder
// in an inline script.
type WohnungsBoerseRule struct {
	baseURL string
}

// Option configures a WohnungsBoerseRule.
type Option func(*WohnungsBoerseRule)

// WithBaseURL overrides the URL the detail ID is resolved against.
func WithBaseURL(u string) Option {
	return func(r *WohnungsBoerseRule) {
		r.baseURL = u
	}
}

// NewWohnungsBoerseRule creates the WohnungsBoerse rule.
func NewWohnungsBoerseRule(opts ...Option) *WohnungsBoerseRule {
	r := &WohnungsBoerseRule{baseURL: WohnungsBoerseBaseURL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Source returns rentwatch.SourceWohnungsBoerse.
func (r *WohnungsBoerseRule) Source() rentwatch.Source {
	return rentwatch.SourceWohnungsBoerse
}

// Extract reads address, rent and title from literal positions 0, 3 and 6
// and builds the detail URL from the numeric ID argument.
func (r *WohnungsBoerseRule) Extract(content string) (*rentwatch.Fields, error) {
	src := r.Source()

	call, ok := ParseGeocodeCall(NewDocument(content))
	if !ok {
		return nil, rentwatch.ContainerNotFound(src)
	}

	switch n := len(call.Literals); {
	case n <= PosAddress:
		return nil, rentwatch.FieldNotFound(src, "location")
	case n <= PosRent:
		return nil, rentwatch.FieldNotFound(src, "rent")
	case n <= PosTitle:
		return nil, rentwatch.FieldNotFound(src, "title")
	}

	if call.ID == "" {
		return nil, rentwatch.FieldNotFound(src, "url")
	}
	link, err := rentwatch.ResolveURL(r.baseURL, call.ID)
	if err != nil {
		return nil, rentwatch.FieldNotFound(src, "url")
	}

	return &rentwatch.Fields{
		Title:    normalize.CollapseSpace(call.Literal(PosTitle)),
		URL:      link,
		Rent:     normalize.CollapseSpace(normalize.Euro(call.Literal(PosRent))),
		Location: normalize.CollapseSpace(call.Literal(PosAddress)),
	}, nil
}
