// Package aggregate is a generic group-by-and-accumulate primitive over a
// finite transaction collection. Consumers supply a grouping key and a
// typed accumulator bundle; the engine folds every record into the bundle
// for its key. Map iteration order is not deterministic; consumers that
// rank results sort with an explicit tie-break.
package aggregate

import (
	"sort"

	"github.com/salespulse/salespulse/internal/sales"
)

// KeyFunc derives the grouping key for a record.
type KeyFunc func(sales.Transaction) string

// Grouping keys needed by the report calculators.
func ByCustomer(t sales.Transaction) string { return t.CustomerID }
func ByProduct(t sales.Transaction) string  { return t.ProductID }
func ByCategory(t sales.Transaction) string { return t.ProductCategory }
func ByMonth(t sales.Transaction) string    { return t.MonthKey() }

// State is an accumulator bundle folded over the records of one group.
type State interface {
	Observe(sales.Transaction)
}

// GroupBy partitions records by key and folds each into a fresh state.
func GroupBy[S State](records []sales.Transaction, key KeyFunc, newState func() S) map[string]S {
	groups := make(map[string]S)
	for _, record := range records {
		k := key(record)
		state, ok := groups[k]
		if !ok {
			state = newState()
			groups[k] = state
		}
		state.Observe(record)
	}
	return groups
}

// SortedKeys returns the group keys in ascending order.
func SortedKeys[S any](groups map[string]S) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
