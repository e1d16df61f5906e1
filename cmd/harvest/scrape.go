package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkowal/harvest"
	"github.com/mkowal/harvest/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d page(s)\n", event.Total)
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %s: %d record(s)\n", event.URL, event.Records)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Scraper.Run(ctx, c.URLs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(result.Records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records extracted.")
		return nil
	}

	// Preview the first few records.
	for i, rec := range result.Records {
		if i == 3 {
			fmt.Fprintf(deps.Stdout, "  ... and %d more\n", len(result.Records)-3)
			break
		}
		title := rec[harvest.FieldTitle]
		if title == "" {
			title = rec[harvest.FieldLink]
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n", i+1, truncate(title, 60))
	}

	fmt.Fprintf(deps.Stdout, "Saved %d new, %d duplicate, %d errored (%d page(s), %d failed)\n",
		result.Saved.Inserted, result.Saved.Duplicate, result.Saved.Errored,
		result.Pages, result.Failed)

	if c.Output != "" {
		if err := exportToFile(c.Output, c.Format, result.Records); err != nil {
			fmt.Fprintf(deps.Stderr, "error exporting: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Exported %d record(s) to %s\n", len(result.Records), c.Output)
	}

	return nil
}

// exportToFile writes records to path in the given format.
func exportToFile(path, format string, records []harvest.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := exporterFor(format).Export(f, records); err != nil {
		return err
	}
	return f.Close()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
