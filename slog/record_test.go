package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/mkowal/harvest"
	"github.com/mkowal/harvest/mock"
	harvestslog "github.com/mkowal/harvest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRecordService_SaveRecords(t *testing.T) {
	t.Parallel()

	t.Run("logs batch counters with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordService{
			SaveRecordsFn: func(_ context.Context, records []harvest.Record) (harvest.SaveResult, error) {
				return harvest.SaveResult{Inserted: 2, Duplicate: 1}, nil
			},
		}

		svc := harvestslog.NewLoggingRecordService(inner, logger)
		result, err := svc.SaveRecords(context.Background(), []harvest.Record{
			{harvest.FieldTitle: "a"},
			{harvest.FieldTitle: "b"},
			{harvest.FieldTitle: "c"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Inserted)

		output := buf.String()
		assert.Contains(t, output, "save records")
		assert.Contains(t, output, "batch=3")
		assert.Contains(t, output, "inserted=2")
		assert.Contains(t, output, "duplicate=1")
		assert.Contains(t, output, "duration=")
	})
}

func TestLoggingRecordService_Delegation(t *testing.T) {
	t.Parallel()

	t.Run("FindRecords delegates to inner service", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		want := []*harvest.StoredRecord{{ID: 1, Title: "x"}}
		inner := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ harvest.RecordFilter) ([]*harvest.StoredRecord, error) {
				return want, nil
			},
		}

		svc := harvestslog.NewLoggingRecordService(inner, logger)
		found, err := svc.FindRecords(context.Background(), harvest.RecordFilter{})
		require.NoError(t, err)
		assert.Equal(t, want, found)
	})

	t.Run("CountRecords delegates to inner service", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		inner := &mock.RecordService{
			CountRecordsFn: func(_ context.Context) (int, error) {
				return 42, nil
			},
		}

		svc := harvestslog.NewLoggingRecordService(inner, logger)
		count, err := svc.CountRecords(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, count)
	})
}
