// Package sqlserver implements SQL Server database adapter.
package sqlserver

import (
	"fmt"
	"net/url"
	"strings"

	_ "github.com/microsoft/go-mssqldb" // SQL Server driver

	"github.com/satishbabariya/migconvert/internal/adapters/database"
)

// NewSQLServerAdapter creates a new SQL Server adapter.
func NewSQLServerAdapter(config database.Config) (*database.SQLAdapter, error) {
	dsn, err := DSN(config.URL)
	if err != nil {
		return nil, err
	}
	return database.NewSQLAdapter("sqlserver", dsn, database.SQLServer, config, nil), nil
}

// DSN normalises mssql:// URLs to the sqlserver:// scheme the driver expects.
// ADO-style strings (server=...;user id=...) pass through unchanged.
func DSN(raw string) (string, error) {
	if strings.HasPrefix(raw, "mssql://") {
		raw = "sqlserver://" + strings.TrimPrefix(raw, "mssql://")
	}
	if !strings.HasPrefix(raw, "sqlserver://") {
		return raw, nil
	}
	if _, err := url.Parse(raw); err != nil {
		return "", fmt.Errorf("invalid sqlserver url: %w", err)
	}
	return raw, nil
}
