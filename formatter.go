package rentwatch

import (
	"fmt"
	"strings"
)

// TimestampLayout is the layout used when listings are rendered as text.
const TimestampLayout = "Jan 02 2006 15:04:05"

// FormatListing renders a listing as a short multi-line block.
// Uses the URL as the heading when the title is empty.
func FormatListing(l *Listing) string {
	header := l.Title
	if header == "" {
		header = l.URL
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", l.Source, header)
	if l.Rent != "" {
		fmt.Fprintf(&b, "  rent:     %s\n", l.Rent)
	}
	if l.Location != "" {
		fmt.Fprintf(&b, "  location: %s\n", l.Location)
	}
	fmt.Fprintf(&b, "  url:      %s\n", l.URL)
	fmt.Fprintf(&b, "  time:     %s", l.ExtractedAt.Format(TimestampLayout))
	return b.String()
}

// FormatListings formats listings separated by blank lines.
func FormatListings(listings []*Listing) string {
	if len(listings) == 0 {
		return ""
	}

	parts := make([]string, 0, len(listings))
	for _, l := range listings {
		parts = append(parts, FormatListing(l))
	}

	return strings.Join(parts, "\n\n")
}
