// Package introspector reads table and column metadata from a live database.
//
// Every dialect reports columns in the MySQL vocabulary the mapper
// understands: a full column type such as "varchar(255)", "YES"/"NO"
// nullability folded into a bool, "PRI" for primary keys and
// "auto_increment" in the extra attributes.
package introspector

import (
	"context"
	"fmt"

	"github.com/satishbabariya/migconvert/internal/adapters/database"
	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

// DatabaseIntrospector implements domain.SchemaReader.
type DatabaseIntrospector struct {
	db database.Adapter

	// mysqlQuoted caches whether MySQL-family defaults arrive as SQL
	// expressions. It is resolved on first use.
	mysqlQuoted *bool
}

// NewDatabaseIntrospector creates a new database introspector.
func NewDatabaseIntrospector(db database.Adapter) *DatabaseIntrospector {
	return &DatabaseIntrospector{
		db: db,
	}
}

// ListTables lists the base tables of the current schema, ordered by name.
func (i *DatabaseIntrospector) ListTables(ctx context.Context) ([]string, error) {
	if i.db == nil {
		return nil, fmt.Errorf("database adapter not initialized")
	}

	var query string
	switch i.db.GetDialect() {
	case database.PostgreSQL:
		query = `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
			ORDER BY table_name
		`
	case database.MySQL:
		query = `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
			ORDER BY table_name
		`
	case database.SQLite:
		query = `
			SELECT name
			FROM sqlite_master
			WHERE type = 'table' AND substr(name, 1, 7) <> 'sqlite_'
			ORDER BY name
		`
	case database.SQLServer:
		query = `
			SELECT TABLE_NAME
			FROM INFORMATION_SCHEMA.TABLES
			WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_TYPE = 'BASE TABLE'
			ORDER BY TABLE_NAME
		`
	default:
		return nil, fmt.Errorf("unsupported database dialect: %s", i.db.GetDialect())
	}

	rows, err := i.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tables: %w", err)
	}

	return tables, nil
}

// ListColumns returns the columns of a table in ordinal order.
func (i *DatabaseIntrospector) ListColumns(ctx context.Context, table string) ([]domain.Column, error) {
	if i.db == nil {
		return nil, fmt.Errorf("database adapter not initialized")
	}

	var (
		columns []domain.Column
		err     error
	)
	switch i.db.GetDialect() {
	case database.MySQL:
		columns, err = i.mysqlColumns(ctx, table)
	case database.PostgreSQL:
		columns, err = i.postgresColumns(ctx, table)
	case database.SQLite:
		columns, err = i.sqliteColumns(ctx, table)
	case database.SQLServer:
		columns, err = i.sqlserverColumns(ctx, table)
	default:
		return nil, fmt.Errorf("unsupported database dialect: %s", i.db.GetDialect())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}

	return columns, nil
}

// Ensure DatabaseIntrospector implements SchemaReader interface.
var _ domain.SchemaReader = (*DatabaseIntrospector)(nil)
