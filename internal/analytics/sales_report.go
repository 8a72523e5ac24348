package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/salespulse/salespulse/internal/sales"
)

const dateLayout = "2006-01-02"

// SalesFilter scopes the sales report. Dates are inclusive ISO-8601 day
// strings; both must be present for a range to apply. Region "all" (or
// empty) means no region filter.
type SalesFilter struct {
	StartDate string
	EndDate   string
	Region    string
}

func (f SalesFilter) region() string {
	if f.Region == "all" {
		return ""
	}
	return f.Region
}

// PeriodComparison carries growth against the immediately preceding
// window of identical length. Zero-filled when no range was requested.
type PeriodComparison struct {
	RevenueGrowth     float64 `json:"revenue_growth"`
	PreviousRevenue   float64 `json:"previous_revenue"`
	TransactionGrowth float64 `json:"transaction_growth"`
}

// SalesReport is the sales analytics payload.
type SalesReport struct {
	TotalRevenue      float64          `json:"total_revenue"`
	TotalTransactions int              `json:"total_transactions"`
	AverageOrderValue float64          `json:"average_order_value"`
	PeriodComparison  PeriodComparison `json:"period_comparison"`
}

// GetSalesReport computes revenue totals over the filtered collection.
// An empty result set is surfaced as sales.ErrNoData, never as zeros.
func (s *Service) GetSalesReport(ctx context.Context, filter SalesFilter) (SalesReport, error) {
	start, end, err := parseRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return SalesReport{}, err
	}

	loader := func(ctx context.Context) (interface{}, error) {
		return s.computeSalesReport(ctx, filter, start, end)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return SalesReport{}, err
		}
		return value.(SalesReport), nil
	}

	key, err := s.cache.BuildKey(ctx, keySales(filter.StartDate, filter.EndDate, filter.region()))
	if err != nil {
		return SalesReport{}, err
	}
	var report SalesReport
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		return SalesReport{}, err
	}
	return report, nil
}

func (s *Service) computeSalesReport(ctx context.Context, filter SalesFilter, start, end time.Time) (SalesReport, error) {
	// The date range only applies when both bounds are present; a
	// one-sided bound is ignored, matching the query contract.
	repoFilter := sales.Filter{Region: filter.region()}
	if !start.IsZero() && !end.IsZero() {
		repoFilter.StartDate = filter.StartDate
		repoFilter.EndDate = filter.EndDate
	}
	records, err := s.repo.Find(ctx, repoFilter)
	if err != nil {
		return SalesReport{}, err
	}
	if len(records) == 0 {
		return SalesReport{}, sales.ErrNoData
	}

	var revenue float64
	for _, t := range records {
		revenue += t.TotalAmount
	}
	count := len(records)

	avgOrder := 0.0
	if count > 0 {
		avgOrder = revenue / float64(count)
	}

	report := SalesReport{
		TotalRevenue:      round2(revenue),
		TotalTransactions: count,
		AverageOrderValue: round2(avgOrder),
	}

	if !start.IsZero() && !end.IsZero() {
		comparison, err := s.comparePreviousPeriod(ctx, filter, start, end, revenue, count)
		if err != nil {
			return SalesReport{}, err
		}
		report.PeriodComparison = comparison
	}
	return report, nil
}

// comparePreviousPeriod re-aggregates over the window of identical length
// immediately before the requested range.
func (s *Service) comparePreviousPeriod(ctx context.Context, filter SalesFilter, start, end time.Time, revenue float64, count int) (PeriodComparison, error) {
	length := end.Sub(start)
	prevStart := start.Add(-length)
	prevEnd := start

	prevRecords, err := s.repo.Find(ctx, sales.Filter{
		StartDate: prevStart.Format(dateLayout),
		EndDate:   prevEnd.Format(dateLayout),
		Region:    filter.region(),
	})
	if err != nil {
		return PeriodComparison{}, err
	}

	var prevRevenue float64
	for _, t := range prevRecords {
		prevRevenue += t.TotalAmount
	}
	return PeriodComparison{
		RevenueGrowth:     pctGrowth(revenue, prevRevenue),
		PreviousRevenue:   round2(prevRevenue),
		TransactionGrowth: pctGrowth(float64(count), float64(len(prevRecords))),
	}, nil
}

// parseRange validates the optional date range. Both bounds must be
// present for the range to apply; an inverted range is rejected instead
// of silently computing a negative-length window.
func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, nil
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date %q", sales.ErrInvalidRange, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %q", sales.ErrInvalidRange, endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %s before start %s", sales.ErrInvalidRange, endDate, startDate)
	}
	return start, end, nil
}
