package sales

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoData indicates the (filtered) transaction set is empty.
	ErrNoData = errors.New("no sales data found")
	// ErrInvalidRange indicates a malformed or inverted date range.
	ErrInvalidRange = errors.New("invalid date range")
)

// Transaction is a single immutable sales record. Customer and product
// attributes are denormalized onto the record at generation time.
type Transaction struct {
	ID              string    `json:"id" db:"id"`
	TransactionID   string    `json:"transaction_id" db:"transaction_id"`
	Date            time.Time `json:"date" db:"occurred_at"`
	CustomerID      string    `json:"customer_id" db:"customer_id"`
	CustomerName    string    `json:"customer_name" db:"customer_name"`
	CustomerSegment string    `json:"customer_segment" db:"customer_segment"`
	ProductID       string    `json:"product_id" db:"product_id"`
	ProductName     string    `json:"product_name" db:"product_name"`
	ProductCategory string    `json:"product_category" db:"product_category"`
	Quantity        int       `json:"quantity" db:"quantity"`
	UnitPrice       float64   `json:"unit_price" db:"unit_price"`
	TotalAmount     float64   `json:"total_amount" db:"total_amount"`
	Region          string    `json:"region" db:"region"`
	SalesRep        string    `json:"sales_rep" db:"sales_rep"`
	Channel         string    `json:"channel" db:"channel"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// NewTransaction builds a record and enforces the derivation invariants:
// unit price is rounded to 2 decimals first and the total is always
// recomputed from the rounded price, never supplied by the caller.
func NewTransaction(txnID string, date time.Time, customerID, customerName, segment string, productID, productName, category string, quantity int, unitPrice float64, region, rep, channel string) (Transaction, error) {
	if quantity < 1 {
		return Transaction{}, fmt.Errorf("sales: quantity must be >= 1, got %d", quantity)
	}
	if unitPrice < 0 {
		return Transaction{}, fmt.Errorf("sales: unit price must not be negative, got %f", unitPrice)
	}
	price := Round2(unitPrice)
	return Transaction{
		ID:              uuid.NewString(),
		TransactionID:   txnID,
		Date:            date.UTC(),
		CustomerID:      customerID,
		CustomerName:    customerName,
		CustomerSegment: segment,
		ProductID:       productID,
		ProductName:     productName,
		ProductCategory: category,
		Quantity:        quantity,
		UnitPrice:       price,
		TotalAmount:     Round2(float64(quantity) * price),
		Region:          region,
		SalesRep:        rep,
		Channel:         channel,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// DateKey returns the ISO date used for lexicographic range comparisons.
func (t Transaction) DateKey() string {
	return t.Date.UTC().Format("2006-01-02")
}

// MonthKey returns the year-month bucket of the record.
func (t Transaction) MonthKey() string {
	return t.Date.UTC().Format("2006-01")
}

// Round2 rounds to 2 decimal places, the precision every monetary field
// is stored and reported at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Filter narrows repository reads. Dates are inclusive ISO-8601 date
// strings; Region is an exact match with "" (or "all" at the HTTP layer)
// meaning no filter.
type Filter struct {
	StartDate   string
	EndDate     string
	Region      string
	Limit       int
	NewestFirst bool
}
