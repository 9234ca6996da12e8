package sqlite

import (
	"context"
	"testing"

	"github.com/jusunglee/unicodeutil/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLogAndRecentQueries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.LogQuery(ctx, db.KindCodepoint, "U+00DF"))
	require.NoError(t, repo.LogQuery(ctx, db.KindName, "sharp s"))
	require.NoError(t, repo.LogQuery(ctx, db.KindCasefold, "WEISS"))

	recent, err := repo.RecentQueries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Most recent first.
	assert.Equal(t, db.KindCasefold, recent[0].Kind)
	assert.Equal(t, "WEISS", recent[0].Query)
	assert.Equal(t, db.KindCodepoint, recent[2].Kind)
	for _, rec := range recent {
		assert.NotZero(t, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
	}
}

func TestRecentQueriesLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for range 5 {
		require.NoError(t, repo.LogQuery(ctx, db.KindPartial, "sharp"))
	}

	recent, err := repo.RecentQueries(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestRecentQueriesEmpty(t *testing.T) {
	repo := newTestRepo(t)
	recent, err := repo.RecentQueries(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
