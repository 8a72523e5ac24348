package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/salespulse/salespulse/internal/sales"
)

func sampleRecords() []sales.Transaction {
	return []sales.Transaction{
		{
			TransactionID:   "TXN000001",
			Date:            time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
			CustomerName:    "Apex Labs Inc",
			CustomerSegment: "Enterprise",
			ProductName:     "Laptop Pro",
			ProductCategory: "Electronics",
			Quantity:        2,
			UnitPrice:       1200.5,
			TotalAmount:     2401,
			Region:          "Europe",
			SalesRep:        "Alice Johnson",
			Channel:         "Online",
		},
		{
			TransactionID:   "TXN000002",
			Date:            time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC),
			CustomerName:    "Zenith Trading Co",
			CustomerSegment: "SMB",
			ProductName:     "Wireless Mouse",
			ProductCategory: "Accessories",
			Quantity:        5,
			UnitPrice:       30,
			TotalAmount:     150,
			Region:          "Asia Pacific",
			SalesRep:        "Bob Smith",
			Channel:         "Retail",
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecords()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Sales Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, reportHeaders, rows[0])
	require.Equal(t, "TXN000001", rows[1][0])
	require.Equal(t, "2025-02-10", rows[1][1])
	require.Equal(t, "TXN000002", rows[2][0])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, reportHeaders, rows[0])
	require.Equal(t, []string{
		"TXN000001", "2025-02-10", "Apex Labs Inc", "Enterprise",
		"Laptop Pro", "Electronics", "2", "1200.50", "2401.00",
		"Europe", "Online",
	}, rows[1])
}
