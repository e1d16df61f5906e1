package harvest

import (
	"context"
	"time"
)

// Canonical record field names. External refinement collaborators may add
// derived keys (e.g. "content_summary") alongside these.
const (
	FieldTitle   = "title"
	FieldAuthor  = "author"
	FieldDate    = "date"
	FieldContent = "content"
	FieldLink    = "link"
)

// Record is a flat field→value mapping extracted from one page container.
// Absent fields are omitted from the map rather than stored as empty strings.
// The link, when present, is an absolute URL.
type Record map[string]string

// HasIdentity reports whether the record carries a non-empty title or link.
// The extraction pipeline only yields records with an identity.
func (r Record) HasIdentity() bool {
	return r[FieldTitle] != "" || r[FieldLink] != ""
}

// Clone returns a shallow copy of the record. Collaborators that mutate
// records should operate on a copy to keep extraction results immutable.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// StoredRecord represents a persisted record row. The link is the
// deduplication key; records without a link never collide with each other.
type StoredRecord struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Date        string    `json:"date"`
	Link        string    `json:"link"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}

// SaveResult reports the outcome of persisting one batch of records.
type SaveResult struct {
	Inserted  int `json:"inserted"`
	Duplicate int `json:"duplicate"`
	Errored   int `json:"errored"`
}

// Add accumulates another batch outcome into the result.
func (r *SaveResult) Add(other SaveResult) {
	r.Inserted += other.Inserted
	r.Duplicate += other.Duplicate
	r.Errored += other.Errored
}

// Total returns the number of records the batch attempted to persist.
func (r SaveResult) Total() int {
	return r.Inserted + r.Duplicate + r.Errored
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Link *string `json:"link"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecordService represents a service for persisting and querying records.
type RecordService interface {
	// SaveRecords persists a batch of records. A record whose link already
	// exists is counted as a duplicate and leaves the stored row untouched
	// (first-write-wins per link). Per-record store errors are counted as
	// errored and never abort the batch.
	SaveRecords(ctx context.Context, records []Record) (SaveResult, error)

	// FindRecords retrieves persisted records matching the filter,
	// newest-insertion-first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*StoredRecord, error)

	// CountRecords returns the total number of persisted records.
	CountRecords(ctx context.Context) (int, error)
}

// Refiner post-processes extracted records before persistence, e.g. by adding
// derived keys. Implementations must not destructively overwrite existing
// keys. The engine treats refinement as an optional external collaborator.
type Refiner interface {
	Refine(ctx context.Context, records []Record) ([]Record, error)
}
