package mock

import (
	"context"

	"github.com/mkowal/harvest"
)

var (
	_ harvest.RecordService = (*RecordService)(nil)
	_ harvest.Refiner       = (*Refiner)(nil)
	_ harvest.DomainLimiter = (*DomainLimiter)(nil)
)

// RecordService is a mock implementation of harvest.RecordService.
type RecordService struct {
	SaveRecordsFn  func(ctx context.Context, records []harvest.Record) (harvest.SaveResult, error)
	FindRecordsFn  func(ctx context.Context, filter harvest.RecordFilter) ([]*harvest.StoredRecord, error)
	CountRecordsFn func(ctx context.Context) (int, error)
}

func (s *RecordService) SaveRecords(ctx context.Context, records []harvest.Record) (harvest.SaveResult, error) {
	return s.SaveRecordsFn(ctx, records)
}

func (s *RecordService) FindRecords(ctx context.Context, filter harvest.RecordFilter) ([]*harvest.StoredRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) CountRecords(ctx context.Context) (int, error) {
	return s.CountRecordsFn(ctx)
}

// Refiner is a mock implementation of harvest.Refiner.
type Refiner struct {
	RefineFn func(ctx context.Context, records []harvest.Record) ([]harvest.Record, error)
}

func (r *Refiner) Refine(ctx context.Context, records []harvest.Record) ([]harvest.Record, error) {
	return r.RefineFn(ctx, records)
}

// DomainLimiter is a mock implementation of harvest.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
