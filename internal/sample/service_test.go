package sample

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse/internal/sales"
)

type mockRepo struct {
	count       int64
	countErr    error
	inserted    []sales.Transaction
	insertCalls int
}

func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	return m.count, m.countErr
}

func (m *mockRepo) InsertAll(ctx context.Context, records []sales.Transaction) error {
	m.insertCalls++
	m.inserted = records
	return nil
}

func (m *mockRepo) Find(ctx context.Context, filter sales.Filter) ([]sales.Transaction, error) {
	return m.inserted, nil
}

type mockBumper struct {
	bumps int
}

func (m *mockBumper) Bump(ctx context.Context) error {
	m.bumps++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateSampleDataSkipsWhenDataExists(t *testing.T) {
	repo := &mockRepo{count: 8000}
	bumper := &mockBumper{}
	svc := NewService(repo, bumper, testLogger(), ServiceConfig{Seed: 42})

	result, err := svc.GenerateSampleData(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(8000), result.RecordCount)
	require.Equal(t, "Sample data already exists (8000 records)", result.Message)
	require.Zero(t, repo.insertCalls)
	require.Zero(t, bumper.bumps)
}

func TestGenerateSampleDataLoadsOnceAndBumpsCache(t *testing.T) {
	repo := &mockRepo{}
	bumper := &mockBumper{}
	svc := NewService(repo, bumper, testLogger(), ServiceConfig{
		WindowDays: 30,
		Customers:  50,
		Seed:       42,
	})
	svc.WithNow(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})

	result, err := svc.GenerateSampleData(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.insertCalls)
	require.Equal(t, 1, bumper.bumps)
	require.Equal(t, int64(len(repo.inserted)), result.RecordCount)
	require.NotEmpty(t, repo.inserted)

	for i, txn := range repo.inserted {
		require.Equal(t, sales.Round2(float64(txn.Quantity)*txn.UnitPrice), txn.TotalAmount, "record %d", i)
		require.GreaterOrEqual(t, txn.Quantity, 1)
		require.LessOrEqual(t, txn.Quantity, 10)
	}
}

func TestGenerateSampleDataIsReproducibleForFixedSeed(t *testing.T) {
	run := func() []sales.Transaction {
		repo := &mockRepo{}
		svc := NewService(repo, nil, testLogger(), ServiceConfig{
			WindowDays: 14,
			Customers:  20,
			Seed:       7,
		})
		svc.WithNow(func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		})
		_, err := svc.GenerateSampleData(context.Background())
		require.NoError(t, err)
		return repo.inserted
	}

	first := run()
	second := run()
	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].TransactionID, second[i].TransactionID)
		require.Equal(t, first[i].CustomerID, second[i].CustomerID)
		require.Equal(t, first[i].ProductID, second[i].ProductID)
		require.Equal(t, first[i].Quantity, second[i].Quantity)
		require.Equal(t, first[i].TotalAmount, second[i].TotalAmount)
	}
}
