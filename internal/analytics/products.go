package analytics

import (
	"context"
	"sort"

	"github.com/salespulse/salespulse/internal/aggregate"
	"github.com/salespulse/salespulse/internal/sales"
)

const topProductLimit = 10

type productGroup struct {
	name     aggregate.First
	category aggregate.First
	revenue  aggregate.Sum
	units    aggregate.IntSum
	price    aggregate.Avg
}

func (g *productGroup) Observe(t sales.Transaction) {
	g.name.Observe(t.ProductName)
	g.category.Observe(t.ProductCategory)
	g.revenue.Observe(t.TotalAmount)
	g.units.Observe(t.Quantity)
	g.price.Observe(t.UnitPrice)
}

type categoryGroup struct {
	revenue aggregate.Sum
	units   aggregate.IntSum
	orders  aggregate.Count
}

func (g *categoryGroup) Observe(t sales.Transaction) {
	g.revenue.Observe(t.TotalAmount)
	g.units.Observe(t.Quantity)
	g.orders.Observe()
}

// TopProduct is one row of the product revenue ranking.
type TopProduct struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Revenue   float64 `json:"revenue"`
	UnitsSold int     `json:"units_sold"`
	AvgPrice  float64 `json:"avg_price"`
}

// CategoryStats summarizes one product category.
type CategoryStats struct {
	Revenue      float64 `json:"revenue"`
	UnitsSold    int     `json:"units_sold"`
	Transactions int     `json:"transactions"`
}

// InventoryInsights holds illustrative stock-movement estimates. No
// inventory ledger backs these figures; they are derived heuristically
// from the sales distribution for dashboard color only.
type InventoryInsights struct {
	LowStockAlert   int `json:"low_stock_alert"`
	FastMovingItems int `json:"fast_moving_items"`
	SlowMovingItems int `json:"slow_moving_items"`
}

// ProductReport is the product analytics payload.
type ProductReport struct {
	TopProducts         []TopProduct             `json:"top_products"`
	CategoryPerformance map[string]CategoryStats `json:"category_performance"`
	InventoryInsights   InventoryInsights        `json:"inventory_insights"`
}

// GetProductReport ranks products by revenue and reports the full
// category mapping.
func (s *Service) GetProductReport(ctx context.Context) (ProductReport, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.computeProductReport(ctx)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return ProductReport{}, err
		}
		return value.(ProductReport), nil
	}

	key, err := s.cache.BuildKey(ctx, keyProducts())
	if err != nil {
		return ProductReport{}, err
	}
	var report ProductReport
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		return ProductReport{}, err
	}
	return report, nil
}

func (s *Service) computeProductReport(ctx context.Context) (ProductReport, error) {
	records, err := s.repo.Find(ctx, sales.Filter{})
	if err != nil {
		return ProductReport{}, err
	}

	products := aggregate.GroupBy(records, aggregate.ByProduct, func() *productGroup { return &productGroup{} })
	categories := aggregate.GroupBy(records, aggregate.ByCategory, func() *categoryGroup { return &categoryGroup{} })

	performance := make(map[string]CategoryStats, len(categories))
	for category, g := range categories {
		performance[category] = CategoryStats{
			Revenue:      round2(g.revenue.Value()),
			UnitsSold:    g.units.Value(),
			Transactions: g.orders.Value(),
		}
	}

	return ProductReport{
		TopProducts:         rankProducts(products, topProductLimit),
		CategoryPerformance: performance,
		InventoryInsights:   estimateInventory(products),
	}, nil
}

// rankProducts sorts by revenue descending with product id ascending as
// the deterministic tie-break.
func rankProducts(groups map[string]*productGroup, limit int) []TopProduct {
	ranked := make([]TopProduct, 0, len(groups))
	for id, g := range groups {
		ranked = append(ranked, TopProduct{
			ID:        id,
			Name:      g.name.Value(),
			Category:  g.category.Value(),
			Revenue:   round2(g.revenue.Value()),
			UnitsSold: g.units.Value(),
			AvgPrice:  round2(g.price.Value()),
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

// estimateInventory derives the illustrative stock figures: products
// moving above the mean units-sold count as fast movers, products under
// half the mean as slow movers, and fast movers double as the low-stock
// alert count.
func estimateInventory(groups map[string]*productGroup) InventoryInsights {
	if len(groups) == 0 {
		return InventoryInsights{}
	}
	totalUnits := 0
	for _, g := range groups {
		totalUnits += g.units.Value()
	}
	mean := float64(totalUnits) / float64(len(groups))

	insights := InventoryInsights{}
	for _, g := range groups {
		units := float64(g.units.Value())
		switch {
		case units >= mean:
			insights.FastMovingItems++
		case units < mean/2:
			insights.SlowMovingItems++
		}
	}
	insights.LowStockAlert = insights.FastMovingItems
	return insights
}
