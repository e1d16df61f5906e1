package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkowal/harvest"
)

// Ensure LoggingRecordService implements harvest.RecordService.
var _ harvest.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with logging of batch save
// counters.
type LoggingRecordService struct {
	next   harvest.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next harvest.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// SaveRecords logs the batch outcome and delegates to the wrapped service.
func (s *LoggingRecordService) SaveRecords(ctx context.Context, records []harvest.Record) (result harvest.SaveResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("save records",
			"batch", len(records),
			"inserted", result.Inserted,
			"duplicate", result.Duplicate,
			"errored", result.Errored,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveRecords(ctx, records)
}

// FindRecords delegates to the wrapped service.
func (s *LoggingRecordService) FindRecords(ctx context.Context, filter harvest.RecordFilter) ([]*harvest.StoredRecord, error) {
	return s.next.FindRecords(ctx, filter)
}

// CountRecords delegates to the wrapped service.
func (s *LoggingRecordService) CountRecords(ctx context.Context) (int, error) {
	return s.next.CountRecords(ctx)
}
