// Package fs provides file-format export adapters for harvested records.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/mkowal/harvest"
)

// Ensure exporters implement harvest.Exporter at compile time.
var (
	_ harvest.Exporter = (*CSVExporter)(nil)
	_ harvest.Exporter = (*JSONExporter)(nil)
)

// CSVExporter writes records as delimited text. The header is the sorted
// union of all keys present in the batch, so derived keys added by
// refinement collaborators are exported alongside the canonical fields.
type CSVExporter struct{}

// NewCSVExporter creates a new CSVExporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes the records to w in CSV format.
func (e *CSVExporter) Export(w io.Writer, records []harvest.Record) error {
	fields := fieldNames(records)

	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return err
	}

	row := make([]string, len(fields))
	for _, rec := range records {
		for i, f := range fields {
			row[i] = rec[f]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// envelope is the JSON export wrapper.
type envelope struct {
	ScrapedAt  string           `json:"scraped_at"`
	TotalItems int              `json:"total_items"`
	Data       []harvest.Record `json:"data"`
}

// JSONExporter writes records inside a {scraped_at, total_items, data}
// envelope.
type JSONExporter struct {
	// now allows tests to pin the envelope timestamp.
	now func() time.Time
}

// NewJSONExporter creates a new JSONExporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{now: time.Now}
}

// Export writes the records to w as an indented JSON envelope.
func (e *JSONExporter) Export(w io.Writer, records []harvest.Record) error {
	if records == nil {
		records = []harvest.Record{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(envelope{
		ScrapedAt:  e.now().UTC().Format(time.RFC3339),
		TotalItems: len(records),
		Data:       records,
	})
}

// fieldNames returns the sorted union of keys across the batch.
func fieldNames(records []harvest.Record) []string {
	set := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			set[k] = struct{}{}
		}
	}

	fields := make([]string, 0, len(set))
	for k := range set {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}
