// Package bloom provides record-link deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for link deduplication within a scrape run.
// It is a cheap pre-filter; the store's unique constraint remains the
// authoritative dedup boundary.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected links
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a link to the filter.
func (f *Filter) Add(link string) {
	f.f.AddString(link)
}

// Test returns true if the link might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(link string) bool {
	return f.f.TestString(link)
}

// EstimatedCount returns the approximate number of links in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
