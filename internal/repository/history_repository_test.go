package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/migconvert/internal/adapters/database"
	"github.com/satishbabariya/migconvert/internal/adapters/database/sqlite"
	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

const createMigrationsTable = `CREATE TABLE migrations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	migration VARCHAR(255) NOT NULL UNIQUE,
	batch INTEGER NOT NULL
)`

func newSQLite(t *testing.T, statements ...string) database.Adapter {
	t.Helper()

	ctx := context.Background()
	adapter, err := sqlite.NewSQLiteAdapter(database.Config{URL: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, adapter.Connect(ctx))
	t.Cleanup(func() { adapter.Disconnect(ctx) })

	for _, stmt := range statements {
		_, err := adapter.Execute(ctx, stmt)
		require.NoError(t, err)
	}
	return adapter
}

func TestHistoryRepository_Exists(t *testing.T) {
	ctx := context.Background()

	missing := NewHistoryRepository(newSQLite(t), "")
	ok, err := missing.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, DefaultHistoryTable, missing.Table())

	present := NewHistoryRepository(newSQLite(t, createMigrationsTable), "migrations")
	ok, err = present.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHistoryRepository_MaxBatchEmpty(t *testing.T) {
	repo := NewHistoryRepository(newSQLite(t, createMigrationsTable), "")

	batch, err := repo.MaxBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, batch)
}

func TestHistoryRepository_AppendAndEntries(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(newSQLite(t,
		createMigrationsTable,
		`INSERT INTO migrations (migration, batch) VALUES ('2014_10_12_000000_create_users_table', 3)`,
	), "")

	batch, err := repo.MaxBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, batch)

	err = repo.Append(ctx, []domain.LedgerEntry{
		{Migration: "2024_01_02_150405_create_posts_table", Batch: 4},
		{Migration: "2024_01_02_150406_create_tags_table", Batch: 4},
	})
	require.NoError(t, err)

	entries, err := repo.Entries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LedgerEntry{
		{Migration: "2014_10_12_000000_create_users_table", Batch: 3},
		{Migration: "2024_01_02_150405_create_posts_table", Batch: 4},
		{Migration: "2024_01_02_150406_create_tags_table", Batch: 4},
	}, entries)

	batch, err = repo.MaxBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, batch)
}

func TestHistoryRepository_AppendIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(newSQLite(t, createMigrationsTable), "")

	// The duplicate violates the unique index, so no row may survive.
	err := repo.Append(ctx, []domain.LedgerEntry{
		{Migration: "a", Batch: 1},
		{Migration: "a", Batch: 1},
	})
	require.Error(t, err)

	entries, err := repo.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryRepository_AppendChunks(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(newSQLite(t, createMigrationsTable), "")

	entries := make([]domain.LedgerEntry, insertChunk+3)
	for i := range entries {
		entries[i] = domain.LedgerEntry{Migration: fmt.Sprintf("m%04d", i), Batch: 1}
	}
	require.NoError(t, repo.Append(ctx, entries))

	got, err := repo.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, got, len(entries))
}

func TestHistoryRepository_InsertStatement(t *testing.T) {
	repo := NewHistoryRepository(newSQLite(t), "migrations")

	query, args := repo.insertStatement([]domain.LedgerEntry{
		{Migration: "a", Batch: 2},
		{Migration: "b", Batch: 2},
	})
	assert.Equal(t, `INSERT INTO "migrations" ("migration", "batch") VALUES (?, ?), (?, ?)`, query)
	assert.Equal(t, []interface{}{"a", 2, "b", 2}, args)
}
