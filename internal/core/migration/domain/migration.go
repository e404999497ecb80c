// Package domain contains the core entities of the schema-to-migration conversion.
package domain

import (
	"context"
	"sort"
)

// Table is a read-only snapshot of a live table taken at run time.
type Table struct {
	Name    string
	Columns []Column
}

// Column is the raw metadata of one table column as reported by the database.
type Column struct {
	Name string
	// RawType is the full column type, e.g. "bigint(20) unsigned".
	RawType  string
	Nullable bool
	// Default is nil when the column has no default.
	Default *string
	// Key is the key classification, e.g. "PRI", "UNI", "MUL" or "".
	Key string
	// Extra carries extra attributes, e.g. "auto_increment".
	Extra           string
	OrdinalPosition int
}

// MigrationFile is a generated migration artifact.
type MigrationFile struct {
	// ID is the file name without extension, e.g. "2024_01_02_150405_create_users_table".
	ID        string
	Table     string
	ClassName string
	Body      string
	Path      string
}

// MigrationSource is the text of an existing migration file.
type MigrationSource struct {
	ID   string
	Path string
	Text string
}

// LedgerEntry is one row of the migration history ledger.
type LedgerEntry struct {
	Migration string
	Batch     int
}

// ReconcileResult describes what a ledger reconciliation did.
type ReconcileResult struct {
	Batch    int
	Recorded []string
	Skipped  bool
}

// ExclusionSet holds the table names that must not receive a new migration.
// The value records which migration covers the table.
type ExclusionSet map[string]string

// NewExclusionSet creates an exclusion set seeded with the given table names.
func NewExclusionSet(tables ...string) ExclusionSet {
	set := make(ExclusionSet, len(tables))
	for _, t := range tables {
		set[t] = ""
	}
	return set
}

// Add records a table as covered by the given migration identifier.
// An existing entry keeps its original source.
func (s ExclusionSet) Add(table, source string) {
	if _, ok := s[table]; ok {
		return
	}
	s[table] = source
}

// Contains reports whether the table is excluded.
func (s ExclusionSet) Contains(table string) bool {
	_, ok := s[table]
	return ok
}

// Source returns the migration identifier covering a table, if known.
func (s ExclusionSet) Source(table string) string {
	return s[table]
}

// Tables returns the excluded table names in sorted order.
func (s ExclusionSet) Tables() []string {
	tables := make([]string, 0, len(s))
	for t := range s {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

// SchemaReader lists tables and columns of the connected database.
type SchemaReader interface {
	// ListTables returns base table names.
	ListTables(ctx context.Context) ([]string, error)

	// ListColumns returns the columns of a table in ordinal order.
	ListColumns(ctx context.Context, table string) ([]Column, error)
}
