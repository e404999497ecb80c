package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/migconvert/internal/adapters/database"
)

func TestDSN(t *testing.T) {
	assert.Equal(t, "db.sqlite", DSN("sqlite:db.sqlite"))
	assert.Equal(t, "/var/app/db.sqlite", DSN("sqlite:///var/app/db.sqlite"))
	assert.Equal(t, "db.sqlite", DSN("sqlite3://db.sqlite"))
	assert.Equal(t, ":memory:", DSN(":memory:"))
}

func TestMemoryDatabaseSurvivesAcrossQueries(t *testing.T) {
	ctx := context.Background()
	adapter, err := NewSQLiteAdapter(database.Config{URL: "sqlite::memory:", MaxConnections: 8})
	require.NoError(t, err)
	require.NoError(t, adapter.Connect(ctx))
	defer adapter.Disconnect(ctx)

	assert.Equal(t, database.SQLite, adapter.GetDialect())

	_, err = adapter.Execute(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)

	var n int
	require.NoError(t, adapter.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n))
	assert.Zero(t, n)
}
