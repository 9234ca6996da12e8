// Package db defines the query log repository: a small persistent
// record of lookups and casefold requests served by the web API, used
// to surface recent activity. The character tables themselves are
// never stored here; they live in memory as immutable parsed data.
package db

import (
	"context"
	"time"
)

// Query kinds recorded in the log.
const (
	KindCodepoint = "codepoint"
	KindName      = "name"
	KindPartial   = "partial"
	KindCasefold  = "casefold"
)

// QueryRecord is one logged API query.
type QueryRecord struct {
	ID        int64
	Kind      string
	Query     string
	CreatedAt time.Time
}

// Repository is the storage interface for the query log. Implemented
// by the sqlite and postgres subpackages.
type Repository interface {
	// LogQuery appends one entry to the log.
	LogQuery(ctx context.Context, kind, query string) error
	// RecentQueries returns the newest entries, most recent first.
	RecentQueries(ctx context.Context, limit int32) ([]QueryRecord, error)
	Close() error
}
