package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/mkowal/harvest"
)

// Compile-time interface verification.
var _ harvest.RecordService = (*RecordService)(nil)

// RecordService implements harvest.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// SaveRecords persists a batch of records in one transaction.
//
// Inserts use INSERT OR IGNORE: a link collision leaves the existing row
// untouched (first-write-wins) and is counted as a duplicate via zero rows
// affected. Any other per-record error is counted as errored and the batch
// continues with the next record.
func (s *RecordService) SaveRecords(ctx context.Context, records []harvest.Record) (harvest.SaveResult, error) {
	var result harvest.SaveResult
	if len(records) == 0 {
		return result, nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return result, err
	}
	defer tx.Rollback()

	scrapedAt := time.Now().UTC().Format(time.RFC3339)

	for _, rec := range records {
		// NULL link so that linkless records never collide with each other.
		var link any
		if v := rec[harvest.FieldLink]; v != "" {
			link = v
		}

		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO records (title, author, date, link, content, content_hash, scraped_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, rec[harvest.FieldTitle], rec[harvest.FieldAuthor], rec[harvest.FieldDate],
			link, rec[harvest.FieldContent], hashContent(rec[harvest.FieldContent]), scrapedAt)
		if err != nil {
			result.Errored++
			continue
		}

		n, err := res.RowsAffected()
		if err != nil {
			result.Errored++
			continue
		}
		if n > 0 {
			result.Inserted++
		} else {
			result.Duplicate++
		}
	}

	if err := tx.Commit(); err != nil {
		return harvest.SaveResult{}, err
	}
	return result, nil
}

// FindRecords retrieves persisted records matching the filter,
// newest-insertion-first.
func (s *RecordService) FindRecords(ctx context.Context, filter harvest.RecordFilter) ([]*harvest.StoredRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, author, date, link, content, content_hash, scraped_at FROM records WHERE 1=1")

	if filter.Link != nil {
		query.WriteString(" AND link = ?")
		args = append(args, *filter.Link)
	}

	// id breaks ties between rows inserted within the same second.
	query.WriteString(" ORDER BY scraped_at DESC, id DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*harvest.StoredRecord
	for rows.Next() {
		var rec harvest.StoredRecord
		var link sql.NullString
		var scrapedAt string

		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Author, &rec.Date, &link,
			&rec.Content, &rec.ContentHash, &scrapedAt); err != nil {
			return nil, err
		}
		rec.Link = link.String

		rec.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
		if err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}

// CountRecords returns the total number of persisted records.
func (s *RecordService) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}
