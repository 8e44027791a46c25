// Package bloom remembers which listings the watcher has already reported.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/rentwatch"
)

// Filter is a Bloom filter over listing keys (source plus URL).
// A false positive makes a new listing look seen; the store decides
// authoritatively, so callers only use the filter to skip work.
// Callers Add a listing only once it has been reported.
//
// Filter is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected listings
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

func key(source rentwatch.Source, url string) []byte {
	return []byte(string(source) + "\n" + url)
}

// Add records a listing.
func (f *Filter) Add(source rentwatch.Source, url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.Add(key(source, url))
}

// Test reports whether the listing might have been recorded.
// False positives are possible; false negatives are not.
func (f *Filter) Test(source rentwatch.Source, url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.Test(key(source, url))
}

// EstimatedCount returns the approximate number of listings in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
