package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse/internal/analytics"
	"github.com/salespulse/salespulse/internal/sales"
)

type warmupRepo struct {
	records   []sales.Transaction
	findCalls int
}

func (m *warmupRepo) Find(ctx context.Context, filter sales.Filter) ([]sales.Transaction, error) {
	m.findCalls++
	return m.records, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReportWarmupSkipsEmptyStore(t *testing.T) {
	repo := &warmupRepo{}
	job := NewReportWarmupJob(analytics.NewService(repo, nil), testLogger())

	task, err := NewReportWarmupTask("all")
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, 1, repo.findCalls)
}

func TestReportWarmupComputesEveryReport(t *testing.T) {
	repo := &warmupRepo{records: []sales.Transaction{{
		Date:            time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		CustomerID:      "CUST0001",
		CustomerSegment: "SMB",
		ProductID:       "PROD001",
		ProductCategory: "Electronics",
		Quantity:        1,
		UnitPrice:       100,
		TotalAmount:     100,
		Region:          "Europe",
	}}}
	job := NewReportWarmupJob(analytics.NewService(repo, nil), testLogger())

	task, err := NewReportWarmupTask("")
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, 4, repo.findCalls)
}

func TestReportWarmupRejectsMalformedPayload(t *testing.T) {
	job := NewReportWarmupJob(analytics.NewService(&warmupRepo{}, nil), testLogger())

	err := job.Handle(context.Background(), asynq.NewTask(TaskTypeReportWarmup, []byte("not json")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}
