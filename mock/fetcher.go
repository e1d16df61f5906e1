// Package mock provides mock implementations of harvest interfaces for testing.
package mock

import (
	"context"

	"github.com/mkowal/harvest"
)

var _ harvest.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of harvest.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
