// Package simulation produces the synthetic transaction stream the
// reporting engine runs on: a day-by-day walk over a trailing window with
// seasonal volume bands, a weekend dip, and segment-based price shaping.
package simulation

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/salespulse/salespulse/internal/catalog"
	"github.com/salespulse/salespulse/internal/sales"
)

// DefaultWindowDays is the trailing window the sample dataset covers.
const DefaultWindowDays = 730

var (
	// ErrEmptyCustomerPool is a fatal precondition violation.
	ErrEmptyCustomerPool = errors.New("simulation: customer pool is empty")
	// ErrEmptyProductPool is a fatal precondition violation.
	ErrEmptyProductPool = errors.New("simulation: product pool is empty")
	// ErrEmptyChannelPool is a fatal precondition violation.
	ErrEmptyChannelPool = errors.New("simulation: channel pool is empty")
	// ErrEmptyRepPool is a fatal precondition violation.
	ErrEmptyRepPool = errors.New("simulation: sales rep pool is empty")
)

// Config bounds a generation run. Now anchors the end of the window so
// runs are reproducible given the same seed and anchor.
type Config struct {
	WindowDays int
	Now        time.Time
	Channels   []string
	SalesReps  []string
}

// Generate walks the window day by day and emits the full transaction
// batch. It is a pure single-pass computation: any failure aborts the
// whole batch and nothing is persisted here.
func Generate(rng *rand.Rand, cfg Config, customers []Customer, products []catalog.Product) ([]sales.Transaction, error) {
	if len(customers) == 0 {
		return nil, ErrEmptyCustomerPool
	}
	if len(products) == 0 {
		return nil, ErrEmptyProductPool
	}
	if len(cfg.Channels) == 0 {
		return nil, ErrEmptyChannelPool
	}
	if len(cfg.SalesReps) == 0 {
		return nil, ErrEmptyRepPool
	}
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	start := now.UTC().AddDate(0, 0, -windowDays)

	var records []sales.Transaction
	for day := 0; day < windowDays; day++ {
		current := start.AddDate(0, 0, day)
		for i := 0; i < dailyVolume(rng, current); i++ {
			customer := customers[rng.Intn(len(customers))]
			product := products[rng.Intn(len(products))]

			quantity := 1 + rng.Intn(10)
			unitPrice := uniform(rng, product.PriceLow, product.PriceHigh)

			// Segment shaping happens before the total is derived; the
			// pre-adjustment total never exists.
			switch customer.Segment {
			case catalog.SegmentEnterprise:
				unitPrice *= uniform(rng, 1.2, 1.8)
			case catalog.SegmentIndividual:
				unitPrice *= uniform(rng, 0.7, 0.9)
			}

			record, err := sales.NewTransaction(
				fmt.Sprintf("TXN%06d", len(records)+1),
				current,
				customer.ID, customer.Name, customer.Segment,
				product.ID, product.Name, product.Category,
				quantity, unitPrice,
				customer.Region,
				cfg.SalesReps[rng.Intn(len(cfg.SalesReps))],
				cfg.Channels[rng.Intn(len(cfg.Channels))],
			)
			if err != nil {
				return nil, fmt.Errorf("simulation: day %s: %w", current.Format("2006-01-02"), err)
			}
			records = append(records, record)
		}
	}
	return records, nil
}

// dailyVolume draws the transaction count for one simulated day.
// Nov/Dec run hot, the summer months dip, and weekends are dampened by a
// fixed multiplier applied after the random draw.
func dailyVolume(rng *rand.Rand, day time.Time) int {
	var base int
	switch day.Month() {
	case time.November, time.December:
		base = randBetween(rng, 15, 35)
	case time.June, time.July, time.August:
		base = randBetween(rng, 5, 15)
	default:
		base = randBetween(rng, 8, 20)
	}
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		base = int(float64(base) * 0.6)
	}
	return base
}

// randBetween draws uniformly from [lo, hi] inclusive.
func randBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
