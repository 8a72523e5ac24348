// Package export serializes sales report data for download.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/salespulse/salespulse/internal/sales"
)

const sheetName = "Sales Report"

var reportHeaders = []string{
	"Transaction ID", "Date", "Customer Name", "Customer Segment",
	"Product Name", "Category", "Quantity", "Unit Price", "Total Amount",
	"Region", "Channel",
}

// WriteXLSX streams the records as a styled spreadsheet.
func WriteXLSX(w io.Writer, records []sales.Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("export: new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D7E4BC"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("export: header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("export: write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("export: style header: %w", err)
		}
	}

	for i, record := range records {
		row := []interface{}{
			record.TransactionID,
			record.Date.UTC().Format("2006-01-02"),
			record.CustomerName,
			record.CustomerSegment,
			record.ProductName,
			record.ProductCategory,
			record.Quantity,
			record.UnitPrice,
			record.TotalAmount,
			record.Region,
			record.Channel,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: row cell: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("export: write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
