package rentwatch

// Target is a search page watched for new listings.
type Target struct {
	// Name labels the target in logs and output. Defaults to the source.
	Name string `yaml:"name" json:"name"`

	// Source selects the extraction rule.
	Source Source `yaml:"source" json:"source"`

	// URL of the search result page, newest listings first.
	URL string `yaml:"url" json:"url"`

	// Browser fetches the page with a headless browser instead of plain HTTP.
	Browser bool `yaml:"browser" json:"browser"`
}

// Label returns the target name, falling back to the source.
func (t Target) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return string(t.Source)
}

// Validate returns an error if the target cannot be watched.
func (t Target) Validate() error {
	if _, err := ParseSource(string(t.Source)); err != nil {
		return err
	}
	if !IsAbsoluteURL(t.URL) {
		return Errorf(EINVALID, "target %q: URL must be absolute: %q", t.Label(), t.URL)
	}
	return nil
}
