// Package scrape provides scraping orchestration. It coordinates page
// fetching, selector resolution, record extraction and persistence.
package scrape

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/mkowal/harvest"
	"github.com/mkowal/harvest/bloom"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates scraping of one or more page URLs.
type Scraper struct {
	Fetcher     harvest.Fetcher
	Resolver    harvest.SelectorResolver
	Extractor   harvest.Extractor
	Records     harvest.RecordService
	Refiner     harvest.Refiner       // optional
	RateLimiter harvest.DomainLimiter // optional
	Concurrency int
	MaxItems    int
}

// Result holds the outcome of a scrape run.
type Result struct {
	// RunID correlates log entries and progress events of one run.
	RunID string

	Pages     int
	Failed    int
	Extracted int

	// Skipped counts records dropped because their link was already seen
	// earlier in the same run (pages of one run often repeat items).
	Skipped int

	Saved harvest.SaveResult

	// Records holds the retained records of the run in page order, after
	// intra-run dedup and refinement, for preview and export.
	Records []harvest.Record
}

// ProgressEvent reports progress during a scrape run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Records   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single page URL.
type pageResult struct {
	position int
	url      string
	records  []harvest.Record
	err      error
}

// Run scrapes the given page URLs and persists the extracted records.
// The progress callback, if provided, receives events as scraping proceeds.
//
// Page failures are counted, never fatal to the run. Each page's batch is
// saved in its own store transaction; canceling the context stops processing
// but already-saved batches are retained.
func (s *Scraper) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	result := &Result{RunID: uuid.New().String()}
	if len(urls) == 0 {
		return result, nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan pageResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			i, url := i, url
			g.Go(func() error {
				pr := s.processPage(gctx, i, url)
				resultCh <- pr
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in page order.
	results := make([]pageResult, len(urls))
	for pr := range resultCh {
		completed.Add(1)
		results[pr.position] = pr

		if pr.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       pr.url,
					Error:     pr.err,
				})
			}
		} else if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       pr.url,
				Records:   len(pr.records),
			})
		}
	}

	// Dedupe, refine and save per page, in page order. The bloom filter only
	// pre-filters within this run; the store's unique constraint stays
	// authoritative across runs. A false positive drops a record from this
	// run's batches, which is the accepted trade-off for cheap membership.
	seen := bloom.NewFilter(10000, 0.001)

	for _, pr := range results {
		if pr.err != nil {
			continue
		}
		result.Pages++

		batch := make([]harvest.Record, 0, len(pr.records))
		for _, rec := range pr.records {
			if link := rec[harvest.FieldLink]; link != "" {
				if seen.Test(link) {
					result.Skipped++
					continue
				}
				seen.Add(link)
			}
			batch = append(batch, rec)
		}
		result.Extracted += len(batch)

		if len(batch) == 0 {
			continue
		}

		if s.Refiner != nil {
			refined, err := s.Refiner.Refine(ctx, batch)
			if err == nil {
				batch = refined
			}
			// A refinement failure leaves the raw batch intact.
		}

		result.Records = append(result.Records, batch...)

		saved, err := s.Records.SaveRecords(ctx, batch)
		if err != nil {
			result.Failed++
			continue
		}
		result.Saved.Add(saved)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return result, nil
}

// processPage fetches one page, resolves its selector set and extracts
// records from it.
func (s *Scraper) processPage(ctx context.Context, position int, url string) pageResult {
	pr := pageResult{position: position, url: url}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, harvest.DomainKey(url)); err != nil {
			pr.err = err
			return pr
		}
	}

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		pr.err = err
		return pr
	}

	selectors := s.Resolver.Resolve(url, html)

	extracted, err := s.Extractor.Extract(html, url, selectors, s.MaxItems)
	if err != nil {
		pr.err = err
		return pr
	}

	pr.records = extracted.Records
	return pr
}
