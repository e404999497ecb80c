// Package postgres implements PostgreSQL database adapter.
package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq" // PostgreSQL driver

	"github.com/satishbabariya/migconvert/internal/adapters/database"
)

// NewPostgresAdapter creates a new PostgreSQL adapter.
func NewPostgresAdapter(config database.Config) (*database.SQLAdapter, error) {
	dsn, err := DSN(config.URL)
	if err != nil {
		return nil, err
	}
	return database.NewSQLAdapter("postgres", dsn, database.PostgreSQL, config, nil), nil
}

// DSN converts a postgres:// URL into a key/value connection string.
// Key/value strings pass through unchanged.
func DSN(raw string) (string, error) {
	if !strings.HasPrefix(raw, "postgres://") && !strings.HasPrefix(raw, "postgresql://") {
		return raw, nil
	}
	dsn, err := pq.ParseURL(raw)
	if err != nil {
		return "", fmt.Errorf("invalid postgres url: %w", err)
	}
	return dsn, nil
}
