package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/unicodeutil/internal/db"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS query_log (
    id BIGSERIAL PRIMARY KEY,
    kind TEXT NOT NULL,
    query TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_query_log_created_at ON query_log (created_at DESC);
`

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and ensures the query log schema exists.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// PoolStats reports pool statistics for metrics export.
func (r *Repository) PoolStats() *pgxpool.Stat {
	return r.pool.Stat()
}

func (r *Repository) LogQuery(ctx context.Context, kind, query string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO query_log (kind, query)
		VALUES ($1, $2)
	`, kind, query)
	if err != nil {
		return fmt.Errorf("logging query: %w", err)
	}
	return nil
}

func (r *Repository) RecentQueries(ctx context.Context, limit int32) ([]db.QueryRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, kind, query, created_at
		FROM query_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []db.QueryRecord
	for rows.Next() {
		var rec db.QueryRecord
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Query, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
