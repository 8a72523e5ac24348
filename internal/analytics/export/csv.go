package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/salespulse/salespulse/internal/sales"
)

// WriteCSV emits the records as CSV with the same column set as the
// spreadsheet export.
func WriteCSV(w io.Writer, records []sales.Transaction) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(reportHeaders); err != nil {
		return err
	}
	for _, record := range records {
		if err := writer.Write([]string{
			record.TransactionID,
			record.Date.UTC().Format("2006-01-02"),
			record.CustomerName,
			record.CustomerSegment,
			record.ProductName,
			record.ProductCategory,
			strconv.Itoa(record.Quantity),
			formatFloat(record.UnitPrice),
			formatFloat(record.TotalAmount),
			record.Region,
			record.Channel,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
