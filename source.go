package rentwatch

// Source identifies a supported listing site. Sources are supplied by the
// caller and never inferred from page content.
type Source string

// Supported sources.
const (
	SourceEbay           Source = "eBay"
	SourceWG1Zimmer      Source = "WG1Zimmer"
	SourceWGWohnung      Source = "WGWohnung"
	SourceWohnungsBoerse Source = "WohnungsBoerse"
	SourceImmowelt       Source = "Immowelt"
	SourceImmoScout24    Source = "ImmoScout24"
	SourceImmonet        Source = "Immonet"
)

// Sources returns every supported source.
func Sources() []Source {
	return []Source{
		SourceEbay,
		SourceWG1Zimmer,
		SourceWGWohnung,
		SourceWohnungsBoerse,
		SourceImmowelt,
		SourceImmoScout24,
		SourceImmonet,
	}
}

// ParseSource returns the Source named s.
// Returns EUNKNOWNSOURCE if s is not a supported source.
func ParseSource(s string) (Source, error) {
	for _, src := range Sources() {
		if string(src) == s {
			return src, nil
		}
	}
	return "", UnknownSource(Source(s))
}
