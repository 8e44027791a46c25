package rentwatch

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Listing is the canonical record of a single listing.
type Listing struct {
	ID          string    `json:"id,omitempty"`
	Source      Source    `json:"source"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Rent        string    `json:"rent"`
	Location    string    `json:"location"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Validate returns an error if the listing contains invalid fields.
func (l *Listing) Validate() error {
	if l.Source == "" {
		return Errorf(EINVALID, "listing source required")
	}
	if !IsAbsoluteURL(l.URL) {
		return Errorf(EINVALID, "listing URL must be absolute: %q", l.URL)
	}
	return nil
}

// IsAbsoluteURL reports whether raw is an http or https URL with a host.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ListingService represents a service for managing extracted listings.
type ListingService interface {
	// CreateListing stores a new listing and assigns its ID.
	// Returns ECONFLICT if a listing with the same source and URL exists.
	CreateListing(ctx context.Context, listing *Listing) error

	// FindListingByID retrieves a listing by ID.
	// Returns ENOTFOUND if listing does not exist.
	FindListingByID(ctx context.Context, id string) (*Listing, error)

	// FindListings retrieves listings matching the filter, newest first.
	FindListings(ctx context.Context, filter ListingFilter) ([]*Listing, error)

	// DeleteListing removes a listing by ID.
	// Returns ENOTFOUND if listing does not exist.
	DeleteListing(ctx context.Context, id string) error

	// DeleteListingsBySource removes all listings for a source.
	DeleteListingsBySource(ctx context.Context, source Source) error
}

// ListingFilter represents a filter for FindListings.
type ListingFilter struct {
	Source *Source `json:"source"`
	URL    *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ResolveURL resolves href against base. Relative hrefs are prefixed with the
// base; absolute hrefs are returned unchanged. Returns EINVALID when the
// result is not an absolute http(s) URL.
func ResolveURL(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL %q: %v", base, err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", Errorf(EINVALID, "invalid href %q: %v", href, err)
	}
	resolved := b.ResolveReference(ref).String()
	if !IsAbsoluteURL(resolved) {
		return "", Errorf(EINVALID, "href %q does not resolve to an absolute URL", href)
	}
	return resolved, nil
}
