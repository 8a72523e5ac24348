package status

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const listLimit = 1000

const schema = `
CREATE TABLE IF NOT EXISTS status_checks (
    id UUID PRIMARY KEY,
    client_name TEXT NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Repository persists status checks.
type Repository interface {
	Insert(ctx context.Context, check Check) error
	List(ctx context.Context) ([]Check, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the PostgreSQL-backed status repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

// EnsureSchema creates the status_checks table when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("status: ensure schema: %w", err)
	}
	return nil
}

func (r *pgRepository) Insert(ctx context.Context, check Check) error {
	const query = `
        INSERT INTO status_checks (id, client_name, recorded_at)
        VALUES ($1, $2, $3)
    `
	if _, err := r.pool.Exec(ctx, query, check.ID, check.ClientName, check.Timestamp); err != nil {
		return fmt.Errorf("status: insert check: %w", err)
	}
	return nil
}

func (r *pgRepository) List(ctx context.Context) ([]Check, error) {
	const query = `
        SELECT id, client_name, recorded_at
        FROM status_checks
        ORDER BY recorded_at DESC
        LIMIT $1
    `
	rows, err := r.pool.Query(ctx, query, listLimit)
	if err != nil {
		return nil, fmt.Errorf("status: list checks: %w", err)
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		var check Check
		if err := rows.Scan(&check.ID, &check.ClientName, &check.Timestamp); err != nil {
			return nil, fmt.Errorf("status: scan check: %w", err)
		}
		checks = append(checks, check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("status: iterate checks: %w", err)
	}
	return checks, nil
}
