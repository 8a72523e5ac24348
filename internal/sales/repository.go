package sales

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salespulse/salespulse/internal/platform/db"
)

// Repository is the transaction store boundary: a count for the
// generation guard, an all-or-nothing bulk insert, and filtered reads.
// Grouping happens in-process over Find results.
type Repository interface {
	Count(ctx context.Context) (int64, error)
	InsertAll(ctx context.Context, records []Transaction) error
	Find(ctx context.Context, filter Filter) ([]Transaction, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed transaction repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS sales_transactions (
	id               UUID PRIMARY KEY,
	transaction_id   TEXT NOT NULL UNIQUE,
	occurred_at      TIMESTAMPTZ NOT NULL,
	customer_id      TEXT NOT NULL,
	customer_name    TEXT NOT NULL,
	customer_segment TEXT NOT NULL,
	product_id       TEXT NOT NULL,
	product_name     TEXT NOT NULL,
	product_category TEXT NOT NULL,
	quantity         INT NOT NULL,
	unit_price       DOUBLE PRECISION NOT NULL,
	total_amount     DOUBLE PRECISION NOT NULL,
	region           TEXT NOT NULL,
	sales_rep        TEXT NOT NULL,
	channel          TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_transactions_occurred_at ON sales_transactions (occurred_at);
CREATE INDEX IF NOT EXISTS idx_sales_transactions_region ON sales_transactions (region);
`

// EnsureSchema creates the transaction table when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("sales: ensure schema: %w", err)
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM sales_transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("sales: count: %w", err)
	}
	return count, nil
}

var copyColumns = []string{
	"id", "transaction_id", "occurred_at",
	"customer_id", "customer_name", "customer_segment",
	"product_id", "product_name", "product_category",
	"quantity", "unit_price", "total_amount",
	"region", "sales_rep", "channel", "created_at",
}

// InsertAll loads the batch inside one transaction so a mid-stream
// failure leaves the store empty.
func (r *repository) InsertAll(ctx context.Context, records []Transaction) error {
	if len(records) == 0 {
		return nil
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		rows := make([][]interface{}, 0, len(records))
		for _, t := range records {
			rows = append(rows, []interface{}{
				t.ID, t.TransactionID, t.Date,
				t.CustomerID, t.CustomerName, t.CustomerSegment,
				t.ProductID, t.ProductName, t.ProductCategory,
				t.Quantity, t.UnitPrice, t.TotalAmount,
				t.Region, t.SalesRep, t.Channel, t.CreatedAt,
			})
		}
		inserted, err := tx.CopyFrom(ctx, pgx.Identifier{"sales_transactions"}, copyColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("sales: copy records: %w", err)
		}
		if inserted != int64(len(records)) {
			return fmt.Errorf("sales: copied %d of %d records", inserted, len(records))
		}
		return nil
	})
}

func (r *repository) Find(ctx context.Context, filter Filter) ([]Transaction, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("occurred_at::date >= $%d::date", argPos))
		args = append(args, filter.StartDate)
		argPos++
	}
	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("occurred_at::date <= $%d::date", argPos))
		args = append(args, filter.EndDate)
		argPos++
	}
	if filter.Region != "" {
		conditions = append(conditions, fmt.Sprintf("region = $%d", argPos))
		args = append(args, filter.Region)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	order := "ASC"
	if filter.NewestFirst {
		order = "DESC"
	}
	query := fmt.Sprintf(`
		SELECT id, transaction_id, occurred_at,
		       customer_id, customer_name, customer_segment,
		       product_id, product_name, product_category,
		       quantity, unit_price, total_amount,
		       region, sales_rep, channel, created_at
		FROM sales_transactions
		%s
		ORDER BY occurred_at %s, transaction_id %s
	`, whereClause, order, order)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales: find: %w", err)
	}
	defer rows.Close()

	var records []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID, &t.TransactionID, &t.Date,
			&t.CustomerID, &t.CustomerName, &t.CustomerSegment,
			&t.ProductID, &t.ProductName, &t.ProductCategory,
			&t.Quantity, &t.UnitPrice, &t.TotalAmount,
			&t.Region, &t.SalesRep, &t.Channel, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sales: scan record: %w", err)
		}
		records = append(records, t)
	}
	return records, rows.Err()
}
