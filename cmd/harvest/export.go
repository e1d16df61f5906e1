package main

import (
	"fmt"

	"github.com/mkowal/harvest"
	"github.com/mkowal/harvest/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	stored, err := deps.Records.FindRecords(deps.Ctx, harvest.RecordFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	records := make([]harvest.Record, 0, len(stored))
	for _, r := range stored {
		records = append(records, recordFromStored(r))
	}

	if err := exportToFile(c.Output, c.Format, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error exporting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d record(s) to %s\n", len(records), c.Output)
	return nil
}

// recordFromStored flattens a stored row back into the exported mapping.
// Absent fields stay absent so exporters see the same shape extraction
// produced.
func recordFromStored(r *harvest.StoredRecord) harvest.Record {
	rec := harvest.Record{}
	if r.Title != "" {
		rec[harvest.FieldTitle] = r.Title
	}
	if r.Author != "" {
		rec[harvest.FieldAuthor] = r.Author
	}
	if r.Date != "" {
		rec[harvest.FieldDate] = r.Date
	}
	if r.Content != "" {
		rec[harvest.FieldContent] = r.Content
	}
	if r.Link != "" {
		rec[harvest.FieldLink] = r.Link
	}
	return rec
}

// exporterFor returns the exporter for a validated format flag.
func exporterFor(format string) harvest.Exporter {
	if format == "json" {
		return fs.NewJSONExporter()
	}
	return fs.NewCSVExporter()
}
