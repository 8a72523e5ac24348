package analytics

import (
	"context"
	"strconv"

	"github.com/salespulse/salespulse/internal/aggregate"
	"github.com/salespulse/salespulse/internal/sales"
)

const (
	trendWindowMonths = 12
	peakPeriodLimit   = 6
	peakThreshold     = 1.2
)

type monthGroup struct {
	revenue aggregate.Sum
	orders  aggregate.Count
}

func (g *monthGroup) Observe(t sales.Transaction) {
	g.revenue.Observe(t.TotalAmount)
	g.orders.Observe()
}

// MonthlyTrends is the chart-ready series for the trailing 12 months.
type MonthlyTrends struct {
	Labels       []string  `json:"labels"`
	Revenue      []float64 `json:"revenue"`
	Transactions []int     `json:"transactions"`
}

// QuarterStats rolls monthly buckets into a calendar quarter, summed
// across every year present in the series.
type QuarterStats struct {
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

// PeakPeriod is a month whose revenue exceeds 120% of the series mean.
type PeakPeriod struct {
	Period       string  `json:"period"`
	Revenue      float64 `json:"revenue"`
	AboveAverage float64 `json:"above_average"`
}

// SeasonalReport is the seasonal trends payload.
type SeasonalReport struct {
	MonthlyTrends    MonthlyTrends           `json:"monthly_trends"`
	SeasonalPatterns map[string]QuarterStats `json:"seasonal_patterns"`
	PeakPeriods      []PeakPeriod            `json:"peak_periods"`
}

// GetSeasonalReport buckets the full collection by year-month and derives
// the monthly series, quarter rollup, and peak-period detection.
func (s *Service) GetSeasonalReport(ctx context.Context) (SeasonalReport, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.computeSeasonalReport(ctx)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return SeasonalReport{}, err
		}
		return value.(SeasonalReport), nil
	}

	key, err := s.cache.BuildKey(ctx, keySeasonal())
	if err != nil {
		return SeasonalReport{}, err
	}
	var report SeasonalReport
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		return SeasonalReport{}, err
	}
	return report, nil
}

func (s *Service) computeSeasonalReport(ctx context.Context) (SeasonalReport, error) {
	records, err := s.repo.Find(ctx, sales.Filter{})
	if err != nil {
		return SeasonalReport{}, err
	}

	months := aggregate.GroupBy(records, aggregate.ByMonth, func() *monthGroup { return &monthGroup{} })
	keys := aggregate.SortedKeys(months)

	return SeasonalReport{
		MonthlyTrends:    monthlySeries(months, keys),
		SeasonalPatterns: quarterRollup(months, keys),
		PeakPeriods:      detectPeaks(months, keys),
	}, nil
}

// monthlySeries truncates the ascending series to the most recent months.
func monthlySeries(months map[string]*monthGroup, keys []string) MonthlyTrends {
	if len(keys) > trendWindowMonths {
		keys = keys[len(keys)-trendWindowMonths:]
	}
	trends := MonthlyTrends{
		Labels:       make([]string, 0, len(keys)),
		Revenue:      make([]float64, 0, len(keys)),
		Transactions: make([]int, 0, len(keys)),
	}
	for _, key := range keys {
		g := months[key]
		trends.Labels = append(trends.Labels, key)
		trends.Revenue = append(trends.Revenue, round2(g.revenue.Value()))
		trends.Transactions = append(trends.Transactions, g.orders.Value())
	}
	return trends
}

// quarterRollup merges every monthly bucket, not just the trailing 12,
// into calendar quarters across all years present.
func quarterRollup(months map[string]*monthGroup, keys []string) map[string]QuarterStats {
	quarters := make(map[string]*monthGroup)
	for _, key := range keys {
		q := quarterOf(key)
		bucket, ok := quarters[q]
		if !ok {
			bucket = &monthGroup{}
			quarters[q] = bucket
		}
		bucket.revenue.Merge(months[key].revenue)
		bucket.orders.Merge(months[key].orders)
	}
	patterns := make(map[string]QuarterStats, len(quarters))
	for q, bucket := range quarters {
		patterns[q] = QuarterStats{
			Revenue:      round2(bucket.revenue.Value()),
			Transactions: bucket.orders.Value(),
		}
	}
	return patterns
}

// quarterOf maps a "2006-01" key to its calendar quarter.
func quarterOf(monthKey string) string {
	month, _ := strconv.Atoi(monthKey[5:])
	switch {
	case month <= 3:
		return "Q1"
	case month <= 6:
		return "Q2"
	case month <= 9:
		return "Q3"
	default:
		return "Q4"
	}
}

// detectPeaks reports months whose revenue exceeds 1.2x the mean of the
// full series. The result keeps chronological order and stops after six
// entries; this is intentionally not a top-six-by-magnitude selection and
// downstream consumers rely on the chronological truncation.
func detectPeaks(months map[string]*monthGroup, keys []string) []PeakPeriod {
	if len(keys) == 0 {
		return []PeakPeriod{}
	}
	var total float64
	for _, key := range keys {
		total += months[key].revenue.Value()
	}
	mean := total / float64(len(keys))

	peaks := make([]PeakPeriod, 0, peakPeriodLimit)
	for _, key := range keys {
		revenue := months[key].revenue.Value()
		if revenue > mean*peakThreshold {
			peaks = append(peaks, PeakPeriod{
				Period:       key,
				Revenue:      round2(revenue),
				AboveAverage: round2((revenue - mean) / mean * 100),
			})
			if len(peaks) == peakPeriodLimit {
				break
			}
		}
	}
	return peaks
}
