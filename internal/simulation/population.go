package simulation

import (
	"fmt"
	"math/rand"
	"time"
)

// Customer is a member of the synthetic customer population. Segment and
// region are fixed at creation and never change afterwards.
type Customer struct {
	ID          string
	Name        string
	Segment     string
	Region      string
	CreatedDate time.Time
}

var (
	companyStems = []string{
		"Apex", "Borealis", "Cascade", "Delta", "Evergreen", "Fulcrum",
		"Granite", "Horizon", "Ironwood", "Juniper", "Keystone", "Lattice",
		"Meridian", "Northwind", "Obsidian", "Pinnacle", "Quantum", "Redwood",
		"Summit", "Tidewater", "Umbra", "Vanguard", "Westbrook", "Zenith",
	}
	companyTrades = []string{
		"Analytics", "Consulting", "Dynamics", "Holdings", "Industries",
		"Labs", "Logistics", "Media", "Partners", "Solutions", "Systems",
		"Technologies", "Trading", "Ventures",
	}
	companySuffixes = []string{"Inc", "LLC", "Ltd", "Group", "Co"}
)

// companyName synthesizes a plausible business name from the word lists.
func companyName(rng *rand.Rand) string {
	stem := companyStems[rng.Intn(len(companyStems))]
	trade := companyTrades[rng.Intn(len(companyTrades))]
	suffix := companySuffixes[rng.Intn(len(companySuffixes))]
	return fmt.Sprintf("%s %s %s", stem, trade, suffix)
}

// NewPopulation samples a fixed customer population of the given size.
// Creation dates fall uniformly within the trailing window ending at now.
func NewPopulation(rng *rand.Rand, size int, segments, regions []string, windowDays int, now time.Time) []Customer {
	customers := make([]Customer, 0, size)
	for i := 0; i < size; i++ {
		customers = append(customers, Customer{
			ID:          fmt.Sprintf("CUST%04d", i+1),
			Name:        companyName(rng),
			Segment:     segments[rng.Intn(len(segments))],
			Region:      regions[rng.Intn(len(regions))],
			CreatedDate: now.UTC().AddDate(0, 0, -rng.Intn(windowDays+1)),
		})
	}
	return customers
}
