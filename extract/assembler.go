package extract

import (
	"github.com/fwojciec/rentwatch"
)

// Assembler turns extracted fields into a Listing.
// It is the only place the clock is read.
type Assembler struct {
	Clock rentwatch.Clock
}

// Assemble stamps the current time onto fields and returns the listing.
func (a *Assembler) Assemble(source rentwatch.Source, fields *rentwatch.Fields) *rentwatch.Listing {
	return &rentwatch.Listing{
		Source:      source,
		Title:       fields.Title,
		URL:         fields.URL,
		Rent:        fields.Rent,
		Location:    fields.Location,
		ExtractedAt: a.Clock.Now(),
	}
}
