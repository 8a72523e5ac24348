package analytics

import (
	"context"
	"sort"

	"github.com/salespulse/salespulse/internal/aggregate"
	"github.com/salespulse/salespulse/internal/sales"
)

const topCustomerLimit = 10

// customerGroup accumulates one customer's activity, carrying the
// first-seen name and segment alongside the numeric measures.
type customerGroup struct {
	name          aggregate.First
	segment       aggregate.First
	revenue       aggregate.Sum
	orders        aggregate.Count
	firstPurchase aggregate.MinString
	lastPurchase  aggregate.MaxString
}

func (g *customerGroup) Observe(t sales.Transaction) {
	g.name.Observe(t.CustomerName)
	g.segment.Observe(t.CustomerSegment)
	g.revenue.Observe(t.TotalAmount)
	g.orders.Observe()
	g.firstPurchase.Observe(t.DateKey())
	g.lastPurchase.Observe(t.DateKey())
}

// TopCustomer is one row of the revenue ranking.
type TopCustomer struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

// SegmentStats summarizes customer groups per segment.
type SegmentStats struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// CustomerReport is the customer analytics payload.
type CustomerReport struct {
	TotalCustomers     int                     `json:"total_customers"`
	ReturningCustomers int                     `json:"returning_customers"`
	RetentionRate      float64                 `json:"customer_retention_rate"`
	TopCustomers       []TopCustomer           `json:"top_customers"`
	SegmentBreakdown   map[string]SegmentStats `json:"segment_breakdown"`
}

// GetCustomerReport groups the full collection by customer and reports
// retention, the revenue top 10, and the per-segment breakdown.
func (s *Service) GetCustomerReport(ctx context.Context) (CustomerReport, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.computeCustomerReport(ctx)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return CustomerReport{}, err
		}
		return value.(CustomerReport), nil
	}

	key, err := s.cache.BuildKey(ctx, keyCustomers())
	if err != nil {
		return CustomerReport{}, err
	}
	var report CustomerReport
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		return CustomerReport{}, err
	}
	return report, nil
}

func (s *Service) computeCustomerReport(ctx context.Context) (CustomerReport, error) {
	records, err := s.repo.Find(ctx, sales.Filter{})
	if err != nil {
		return CustomerReport{}, err
	}

	groups := aggregate.GroupBy(records, aggregate.ByCustomer, func() *customerGroup { return &customerGroup{} })

	total := len(groups)
	returning := 0
	segments := make(map[string]SegmentStats)
	for _, g := range groups {
		if g.orders.Value() > 1 {
			returning++
		}
		stats := segments[g.segment.Value()]
		stats.Count++
		stats.Revenue += g.revenue.Value()
		segments[g.segment.Value()] = stats
	}
	for segment, stats := range segments {
		stats.Revenue = round2(stats.Revenue)
		segments[segment] = stats
	}

	retention := 0.0
	if total > 0 {
		retention = float64(returning) / float64(total) * 100
	}

	return CustomerReport{
		TotalCustomers:     total,
		ReturningCustomers: returning,
		RetentionRate:      round2(retention),
		TopCustomers:       rankCustomers(groups, topCustomerLimit),
		SegmentBreakdown:   segments,
	}, nil
}

// rankCustomers sorts by revenue descending; ties break on customer id
// ascending so the ranking is deterministic.
func rankCustomers(groups map[string]*customerGroup, limit int) []TopCustomer {
	ranked := make([]TopCustomer, 0, len(groups))
	for id, g := range groups {
		ranked = append(ranked, TopCustomer{
			ID:           id,
			Name:         g.name.Value(),
			Revenue:      round2(g.revenue.Value()),
			Transactions: g.orders.Value(),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
