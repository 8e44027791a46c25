package rentwatch

// Fields holds the normalized values a Rule pulls out of one listing.
type Fields struct {
	Title    string
	URL      string
	Rent     string
	Location string
}

// Rule extracts the newest listing from one source's page content.
// Rules are stateless and safe for concurrent use.
type Rule interface {
	// Source returns the source this rule handles.
	Source() Source

	// Extract locates the most recent listing in content and returns its fields.
	// Returns ECONTAINERNOTFOUND when the listing container is absent,
	// EFIELDNOTFOUND when a required sub-element is absent, and EUPSTREAM
	// when the content cannot be parsed.
	Extract(content string) (*Fields, error)
}

// Dispatcher selects the rule for a source and assembles the listing.
type Dispatcher interface {
	// Dispatch extracts the newest listing for source from content.
	// Returns EUNKNOWNSOURCE if no rule is registered for source,
	// regardless of content.
	Dispatch(source Source, content string) (*Listing, error)
}
