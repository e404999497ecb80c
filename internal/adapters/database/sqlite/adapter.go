// Package sqlite implements SQLite database adapter.
package sqlite

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/satishbabariya/migconvert/internal/adapters/database"
)

// NewSQLiteAdapter creates a new SQLite adapter. The URL is a file path,
// optionally prefixed with sqlite: or sqlite://.
func NewSQLiteAdapter(config database.Config) (*database.SQLAdapter, error) {
	// A single connection keeps :memory: databases alive across queries.
	tune := func(db *sql.DB) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	return database.NewSQLAdapter("sqlite3", DSN(config.URL), database.SQLite, config, tune), nil
}

// DSN strips the scheme from a sqlite URL.
func DSN(raw string) string {
	for _, prefix := range []string{"sqlite://", "sqlite3://", "sqlite:"} {
		if strings.HasPrefix(raw, prefix) {
			return strings.TrimPrefix(raw, prefix)
		}
	}
	return raw
}
