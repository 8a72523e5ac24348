// Package analytics turns the raw transaction collection into the four
// reporting payloads: sales totals with period comparison, customer
// retention, product rankings, and seasonal trends. Every calculator is a
// pure read over an already-materialized collection; concurrent requests
// need no coordination.
package analytics

import (
	"context"
	"strconv"

	"github.com/salespulse/salespulse/internal/sales"
)

// Repository is the read side of the transaction store the calculators
// consume. Grouping is performed in-process over Find results.
type Repository interface {
	Find(ctx context.Context, filter sales.Filter) ([]sales.Transaction, error)
}

// Service coordinates report computation with the cache layer.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func round2(v float64) float64 {
	return sales.Round2(v)
}

// pctGrowth reports relative growth in percent, resolving a zero base to
// 0 rather than a division error.
func pctGrowth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round2((current - previous) / previous * 100)
}
