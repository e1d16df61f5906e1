package main_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkowal/harvest"
	main "github.com/mkowal/harvest/cmd/harvest"
	"github.com/mkowal/harvest/mock"
	"github.com/mkowal/harvest/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testScraper builds a Scraper whose pages each yield the given records.
func testScraper(records []harvest.Record) *scrape.Scraper {
	return &scrape.Scraper{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) { return "<html></html>", nil },
		},
		Resolver: &mock.SelectorResolver{
			ResolveFn: func(_, _ string) harvest.SelectorSet { return harvest.DefaultSelectorSet() },
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(_, _ string, _ harvest.SelectorSet, _ int) (*harvest.ExtractResult, error) {
				return &harvest.ExtractResult{Records: records}, nil
			},
		},
		Records: &mock.RecordService{
			SaveRecordsFn: func(_ context.Context, batch []harvest.Record) (harvest.SaveResult, error) {
				return harvest.SaveResult{Inserted: len(batch)}, nil
			},
		},
	}
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("previews records and prints the save summary", func(t *testing.T) {
		t.Parallel()

		var records []harvest.Record
		for i := 1; i <= 5; i++ {
			records = append(records, harvest.Record{
				harvest.FieldTitle: fmt.Sprintf("post %d", i),
				harvest.FieldLink:  fmt.Sprintf("https://example.com/%d", i),
			})
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scraper: testScraper(records),
		}

		cmd := &main.ScrapeCmd{URLs: []string{"https://example.com"}}

		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Scraping 1 page(s)")
		assert.Contains(t, output, "1. post 1")
		assert.Contains(t, output, "3. post 3")
		assert.NotContains(t, output, "4. post 4")
		assert.Contains(t, output, "... and 2 more")
		assert.Contains(t, output, "Saved 5 new, 0 duplicate, 0 errored (1 page(s), 0 failed)")
	})

	t.Run("reports when nothing was extracted", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scraper: testScraper(nil),
		}

		cmd := &main.ScrapeCmd{URLs: []string{"https://example.com"}}

		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No records extracted.")
	})

	t.Run("reports failed pages on stderr", func(t *testing.T) {
		t.Parallel()

		scraper := testScraper(nil)
		scraper.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("connection refused")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Scraper: scraper,
		}

		cmd := &main.ScrapeCmd{URLs: []string{"https://bad.example.com"}}

		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "skip https://bad.example.com")
	})

	t.Run("writes the export file when output is set", func(t *testing.T) {
		t.Parallel()

		records := []harvest.Record{
			{harvest.FieldTitle: "post", harvest.FieldLink: "https://example.com/post"},
		}

		path := filepath.Join(t.TempDir(), "nested", "out.csv")
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Scraper: testScraper(records),
		}

		cmd := &main.ScrapeCmd{
			URLs:   []string{"https://example.com"},
			Output: path,
			Format: "csv",
		}

		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Exported 1 record(s)")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "post")
	})
}
