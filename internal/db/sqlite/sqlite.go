package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/jusunglee/unicodeutil/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements db.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New opens (and if necessary creates) the SQLite query log at dbPath.
// Pass ":memory:" for an ephemeral log.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	// WAL keeps readers of the recent-queries endpoint from blocking
	// writers.
	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{db: sqliteDB}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) LogQuery(ctx context.Context, kind, query string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO query_log (kind, query, created_at)
		VALUES (?, ?, ?)
	`, kind, query, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("logging query: %w", err)
	}
	return nil
}

func (r *Repository) RecentQueries(ctx context.Context, limit int32) ([]db.QueryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, query, created_at
		FROM query_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []db.QueryRecord
	for rows.Next() {
		var rec db.QueryRecord
		var createdAtStr string
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Query, &createdAtStr); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}
