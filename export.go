package harvest

import "io"

// Exporter writes a batch of records to an output stream in some bulk
// format. Exported records are flat key→string mappings; derived keys added
// by refinement collaborators are exported like any other field.
type Exporter interface {
	Export(w io.Writer, records []Record) error
}
