package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/rentwatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ rentwatch.ListingService = (*ListingService)(nil)

// ListingService implements rentwatch.ListingService using SQLite.
type ListingService struct {
	db *DB
}

// NewListingService creates a new ListingService.
func NewListingService(db *DB) *ListingService {
	return &ListingService{db: db}
}

const listingColumns = "id, source, title, url, rent, location, extracted_at"

// CreateListing stores a new listing and assigns its ID.
// The listing is left untouched when ECONFLICT is returned.
func (s *ListingService) CreateListing(ctx context.Context, listing *rentwatch.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	id := uuid.New().String()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO listings (id, fingerprint, source, title, url, rent, location, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`, id, fingerprint(listing.Source, listing.URL), string(listing.Source), listing.Title,
		listing.URL, listing.Rent, listing.Location, formatTime(listing.ExtractedAt))
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return rentwatch.Errorf(rentwatch.ECONFLICT, "listing already stored: %s", listing.URL)
	}

	listing.ID = id
	return nil
}

// FindListingByID retrieves a listing by ID.
func (s *ListingService) FindListingByID(ctx context.Context, id string) (*rentwatch.Listing, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+listingColumns+" FROM listings WHERE id = ?", id)

	listing, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, rentwatch.Errorf(rentwatch.ENOTFOUND, "listing not found")
	}
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// FindListings retrieves listings matching the filter, newest first.
func (s *ListingService) FindListings(ctx context.Context, filter rentwatch.ListingFilter) ([]*rentwatch.Listing, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + listingColumns + " FROM listings WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, string(*filter.Source))
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY extracted_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*rentwatch.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

// DeleteListing removes a listing by ID.
func (s *ListingService) DeleteListing(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return rentwatch.Errorf(rentwatch.ENOTFOUND, "listing not found")
	}
	return nil
}

// DeleteListingsBySource removes all listings for a source.
func (s *ListingService) DeleteListingsBySource(ctx context.Context, source rentwatch.Source) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM listings WHERE source = ?", string(source))
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(row scanner) (*rentwatch.Listing, error) {
	var l rentwatch.Listing
	var source, extractedAt string

	if err := row.Scan(&l.ID, &source, &l.Title, &l.URL, &l.Rent, &l.Location, &extractedAt); err != nil {
		return nil, err
	}
	l.Source = rentwatch.Source(source)

	var err error
	l.ExtractedAt, err = parseTime(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}
	return &l, nil
}
