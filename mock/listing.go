package mock

import (
	"context"

	"github.com/fwojciec/rentwatch"
)

var _ rentwatch.ListingService = (*ListingService)(nil)

// ListingService is a mock implementation of rentwatch.ListingService.
type ListingService struct {
	CreateListingFn          func(ctx context.Context, listing *rentwatch.Listing) error
	FindListingByIDFn        func(ctx context.Context, id string) (*rentwatch.Listing, error)
	FindListingsFn           func(ctx context.Context, filter rentwatch.ListingFilter) ([]*rentwatch.Listing, error)
	DeleteListingFn          func(ctx context.Context, id string) error
	DeleteListingsBySourceFn func(ctx context.Context, source rentwatch.Source) error
}

func (s *ListingService) CreateListing(ctx context.Context, listing *rentwatch.Listing) error {
	return s.CreateListingFn(ctx, listing)
}

func (s *ListingService) FindListingByID(ctx context.Context, id string) (*rentwatch.Listing, error) {
	return s.FindListingByIDFn(ctx, id)
}

func (s *ListingService) FindListings(ctx context.Context, filter rentwatch.ListingFilter) ([]*rentwatch.Listing, error) {
	return s.FindListingsFn(ctx, filter)
}

func (s *ListingService) DeleteListing(ctx context.Context, id string) error {
	return s.DeleteListingFn(ctx, id)
}

func (s *ListingService) DeleteListingsBySource(ctx context.Context, source rentwatch.Source) error {
	return s.DeleteListingsBySourceFn(ctx, source)
}

var _ rentwatch.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of rentwatch.Notifier.
type Notifier struct {
	NotifyFn func(ctx context.Context, listing *rentwatch.Listing) error
}

func (n *Notifier) Notify(ctx context.Context, listing *rentwatch.Listing) error {
	return n.NotifyFn(ctx, listing)
}
