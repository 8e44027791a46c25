package main

import (
	"fmt"

	"github.com/fwojciec/rentwatch"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	var filter rentwatch.ListingFilter
	if c.Source != "" {
		source, err := rentwatch.ParseSource(c.Source)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: unknown source %q. Use 'rentwatch sources' to see supported sources.\n", c.Source)
			return err
		}
		filter.Source = &source
	}

	if c.Clear {
		return c.clear(deps, filter.Source)
	}

	filter.Limit = c.Limit
	filter.Offset = c.Offset
	listings, err := deps.Listings.FindListings(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if c.JSON {
		if listings == nil {
			listings = []*rentwatch.Listing{}
		}
		return writeJSON(deps.Stdout, listings)
	}

	if len(listings) == 0 {
		fmt.Fprintln(deps.Stdout, "No listings stored. Use 'rentwatch watch' to collect some.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, rentwatch.FormatListings(listings))
	return nil
}

func (c *HistoryCmd) clear(deps *Dependencies, source *rentwatch.Source) error {
	if source == nil {
		fmt.Fprintf(deps.Stderr, "error: --clear needs a source\n")
		return rentwatch.Errorf(rentwatch.EINVALID, "--clear needs a source")
	}
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return rentwatch.Errorf(rentwatch.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Listings.DeleteListingsBySource(deps.Ctx, *source); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted listings for %s\n", *source)
	return nil
}
