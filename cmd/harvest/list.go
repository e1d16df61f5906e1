package main

import (
	"fmt"

	"github.com/mkowal/harvest"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	records, err := deps.Records.FindRecords(deps.Ctx, harvest.RecordFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records stored. Use 'harvest scrape' to collect some.")
		return nil
	}

	for _, r := range records {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%d  %s  %s  %s\n", r.ID, r.ScrapedAt.Format("2006-01-02 15:04"), title, r.Link)
		if c.Full && r.Content != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", r.Content)
		}
	}

	total, err := deps.Records.CountRecords(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "%d of %d record(s)\n", len(records), total)

	return nil
}
