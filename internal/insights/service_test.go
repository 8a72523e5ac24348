package insights

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse/internal/sales"
)

type mockFinder struct {
	records []sales.Transaction
	err     error
	filter  sales.Filter
}

func (m *mockFinder) Find(ctx context.Context, filter sales.Filter) ([]sales.Transaction, error) {
	m.filter = filter
	return m.records, m.err
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecords() []sales.Transaction {
	day := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	return []sales.Transaction{
		{Date: day, CustomerSegment: "Enterprise", ProductID: "PROD001", ProductName: "Laptop Pro", TotalAmount: 2500},
		{Date: day, CustomerSegment: "SMB", ProductID: "PROD002", ProductName: "Wireless Mouse", TotalAmount: 500},
		{Date: day, CustomerSegment: "SMB", ProductID: "PROD001", ProductName: "Laptop Pro", TotalAmount: 1000},
	}
}

func TestGetInsightsBuildsPromptAndExtractsRecommendations(t *testing.T) {
	finder := &mockFinder{records: testRecords()}
	generator := &stubGenerator{text: `Sales are trending upward across all regions this quarter.
We recommend expanding the enterprise outreach program in Europe.
You should consider bundling accessories with laptop purchases.
ok`}
	svc := NewService(finder, generator, testLogger())

	report, err := svc.GetInsights(context.Background())
	require.NoError(t, err)

	require.Equal(t, sales.Filter{Limit: 1000, NewestFirst: true}, finder.filter)

	require.Contains(t, generator.prompt, "Total Revenue (last 3 transactions): $4,000.00")
	require.Contains(t, generator.prompt, "1. Laptop Pro: $3,500.00")
	require.Contains(t, generator.prompt, "- SMB: 2 transactions")
	require.Contains(t, generator.prompt, "Keep insights concise")

	require.Equal(t, generator.text, report.Insights)
	require.Len(t, report.Recommendations, 2)
	require.Contains(t, report.Recommendations[0], "recommend expanding")
	require.False(t, report.GeneratedAt.IsZero())
}

func TestGetInsightsEmptyCollection(t *testing.T) {
	svc := NewService(&mockFinder{}, &stubGenerator{}, testLogger())
	_, err := svc.GetInsights(context.Background())
	require.ErrorIs(t, err, sales.ErrNoData)
}

func TestGetInsightsFallsBackWhenGeneratorFails(t *testing.T) {
	finder := &mockFinder{records: testRecords()}
	generator := &stubGenerator{err: errors.New("quota exhausted")}
	svc := NewService(finder, generator, testLogger())

	report, err := svc.GetInsights(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.Insights)
	require.NotEmpty(t, report.Recommendations)
	require.Contains(t, report.TrendsAnalysis, "Manual analysis")
}

func TestGetInsightsWithoutGenerator(t *testing.T) {
	svc := NewService(&mockFinder{records: testRecords()}, nil, testLogger())

	report, err := svc.GetInsights(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.Insights)
}

func TestExtractRecommendations(t *testing.T) {
	// Marker lines shorter than the length floor are dropped.
	recs := extractRecommendations("should do it\nnothing actionable in this line at all")
	require.Equal(t, defaultRecommendations(), recs)

	// At most five lines survive.
	text := ""
	for i := 0; i < 8; i++ {
		text += "We recommend doing this specific longer thing again\n"
	}
	recs = extractRecommendations(text)
	require.Len(t, recs, 5)
}
