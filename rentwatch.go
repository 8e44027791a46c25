// Package rentwatch extracts the newest listing from rental and classifieds
// search pages and watches those pages for new listings.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, re2/, sqlite/, rod/).
package rentwatch
