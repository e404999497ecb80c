package introspector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/migconvert/internal/adapters/database"
	"github.com/satishbabariya/migconvert/internal/adapters/database/sqlite"
	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

func setupSQLite(t *testing.T, statements ...string) database.Adapter {
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

func TestSQLiteIntrospection(t *testing.T) {
	adapter := setupSQLite(t,
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			nickname TEXT,
			score DOUBLE NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at DATETIME
		)`,
		`CREATE TABLE posts (id INTEGER PRIMARY KEY, title TEXT NOT NULL)`,
	)

	ctx := context.Background()
	intro := NewDatabaseIntrospector(adapter)

	tables, err := intro.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"posts", "users"}, tables)

	columns, err := intro.ListColumns(ctx, "users")
	require.NoError(t, err)
	require.Len(t, columns, 6)

	id := columns[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "PRI", id.Key)
	assert.Equal(t, "auto_increment", id.Extra)
	assert.False(t, id.Nullable)
	assert.Equal(t, 1, id.OrdinalPosition)

	email := columns[1]
	assert.Equal(t, "VARCHAR(255)", email.RawType)
	assert.False(t, email.Nullable)
	assert.Nil(t, email.Default)

	assert.True(t, columns[2].Nullable)

	require.NotNil(t, columns[3].Default)
	assert.Equal(t, "0", *columns[3].Default)

	require.NotNil(t, columns[4].Default)
	assert.Equal(t, "active", *columns[4].Default)

	assert.Equal(t, 6, columns[5].OrdinalPosition)
}

func TestSQLiteCompositeKeyIsNotAutoIncrement(t *testing.T) {
	adapter := setupSQLite(t,
		`CREATE TABLE role_user (role_id INTEGER NOT NULL, user_id INTEGER NOT NULL, PRIMARY KEY (role_id, user_id))`,
	)

	columns, err := NewDatabaseIntrospector(adapter).ListColumns(context.Background(), "role_user")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	for _, col := range columns {
		assert.Equal(t, "PRI", col.Key)
		assert.Empty(t, col.Extra)
	}
}

func TestSQLiteListTablesSkipsOnlyInternalTables(t *testing.T) {
	adapter := setupSQLite(t,
		`CREATE TABLE jobs (id INTEGER PRIMARY KEY AUTOINCREMENT)`,
		`CREATE TABLE sqliteXlog (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE sqlitexport (id INTEGER PRIMARY KEY)`,
	)

	// AUTOINCREMENT creates sqlite_sequence.
	tables, err := NewDatabaseIntrospector(adapter).ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"jobs", "sqliteXlog", "sqlitexport"}, tables)
}

func TestNilAdapter(t *testing.T) {
	intro := NewDatabaseIntrospector(nil)

	_, err := intro.ListTables(context.Background())
	assert.Error(t, err)
	_, err = intro.ListColumns(context.Background(), "users")
	assert.Error(t, err)
}

var _ domain.SchemaReader = NewDatabaseIntrospector(nil)
