package simulation

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse/internal/catalog"
	"github.com/salespulse/salespulse/internal/sales"
)

func testConfig(windowDays int) Config {
	return Config{
		WindowDays: windowDays,
		Now:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Channels:   catalog.Channels(),
		SalesReps:  catalog.SalesReps(),
	}
}

func testPopulation(rng *rand.Rand, size int) []Customer {
	return NewPopulation(rng, size, catalog.Segments(), catalog.Regions(), DefaultWindowDays, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
}

func TestGenerateEmptyPools(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := Generate(rng, testConfig(10), nil, catalog.Products())
	require.ErrorIs(t, err, ErrEmptyCustomerPool)

	_, err = Generate(rng, testConfig(10), testPopulation(rng, 5), nil)
	require.ErrorIs(t, err, ErrEmptyProductPool)

	noChannels := testConfig(10)
	noChannels.Channels = nil
	_, err = Generate(rng, noChannels, testPopulation(rng, 5), catalog.Products())
	require.ErrorIs(t, err, ErrEmptyChannelPool)

	noReps := testConfig(10)
	noReps.SalesReps = nil
	_, err = Generate(rng, noReps, testPopulation(rng, 5), catalog.Products())
	require.ErrorIs(t, err, ErrEmptyRepPool)
}

func TestGenerateWindowAndSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	customers := testPopulation(rng, 50)
	cfg := testConfig(60)

	records, err := Generate(rng, cfg, customers, catalog.Products())
	require.NoError(t, err)
	require.NotEmpty(t, records)

	start := cfg.Now.AddDate(0, 0, -cfg.WindowDays)
	for i, txn := range records {
		require.Equal(t, fmt.Sprintf("TXN%06d", i+1), txn.TransactionID)
		require.False(t, txn.Date.Before(start))
		require.True(t, txn.Date.Before(cfg.Now))
		require.GreaterOrEqual(t, txn.Quantity, 1)
		require.LessOrEqual(t, txn.Quantity, 10)
		require.Equal(t, sales.Round2(float64(txn.Quantity)*txn.UnitPrice), txn.TotalAmount)
		if i > 0 {
			require.False(t, txn.Date.Before(records[i-1].Date))
		}
	}
}

func TestGenerateWeekendDip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	customers := testPopulation(rng, 100)
	cfg := testConfig(DefaultWindowDays)

	records, err := Generate(rng, cfg, customers, catalog.Products())
	require.NoError(t, err)

	perDay := make(map[string]int)
	for _, txn := range records {
		perDay[txn.DateKey()] += 1
	}

	var weekdayTotal, weekdayDays, weekendTotal, weekendDays float64
	start := cfg.Now.AddDate(0, 0, -cfg.WindowDays)
	for day := 0; day < cfg.WindowDays; day++ {
		current := start.AddDate(0, 0, day)
		volume := float64(perDay[current.Format("2006-01-02")])
		if wd := current.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekendTotal += volume
			weekendDays++
		} else {
			weekdayTotal += volume
			weekdayDays++
		}
	}
	require.NotZero(t, weekdayDays)
	require.NotZero(t, weekendDays)
	require.Less(t, weekendTotal/weekendDays, weekdayTotal/weekdayDays)
}

func TestGenerateReproducible(t *testing.T) {
	run := func() []sales.Transaction {
		rng := rand.New(rand.NewSource(99))
		customers := testPopulation(rng, 30)
		records, err := Generate(rng, testConfig(30), customers, catalog.Products())
		require.NoError(t, err)
		return records
	}

	first := run()
	second := run()
	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].CustomerID, second[i].CustomerID)
		require.Equal(t, first[i].UnitPrice, second[i].UnitPrice)
	}
}

func TestNewPopulationIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	customers := testPopulation(rng, 500)
	require.Len(t, customers, 500)
	require.Equal(t, "CUST0001", customers[0].ID)
	require.Equal(t, "CUST0500", customers[499].ID)
	for _, c := range customers {
		require.Contains(t, catalog.Segments(), c.Segment)
		require.Contains(t, catalog.Regions(), c.Region)
		require.NotEmpty(t, c.Name)
	}
}
