// Package repository implements repository interfaces for data access.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/satishbabariya/migconvert/internal/adapters/database"
	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
	"github.com/satishbabariya/migconvert/internal/debug"
)

// DefaultHistoryTable is the ledger table Laravel's migrator maintains.
const DefaultHistoryTable = "migrations"

// insertChunk bounds the rows per INSERT statement. SQL Server accepts at
// most 2100 parameters per statement.
const insertChunk = 500

// HistoryRepositoryImpl implements the HistoryRepository interface using a database.
type HistoryRepositoryImpl struct {
	db    database.Adapter
	table string
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db database.Adapter, table string) *HistoryRepositoryImpl {
	if table == "" {
		table = DefaultHistoryTable
	}
	return &HistoryRepositoryImpl{
		db:    db,
		table: table,
	}
}

// Table returns the ledger table name.
func (r *HistoryRepositoryImpl) Table() string {
	return r.table
}

// Exists reports whether the ledger table exists.
func (r *HistoryRepositoryImpl) Exists(ctx context.Context) (bool, error) {
	if r.db == nil {
		return false, fmt.Errorf("database adapter not initialized")
	}

	dialect := r.db.GetDialect()
	var query string
	switch dialect {
	case database.PostgreSQL:
		query = `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1
		`
	case database.MySQL:
		query = `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = DATABASE() AND table_name = ?
		`
	case database.SQLite:
		query = `
			SELECT COUNT(*)
			FROM sqlite_master
			WHERE type = 'table' AND name = ?
		`
	case database.SQLServer:
		query = `
			SELECT COUNT(*)
			FROM INFORMATION_SCHEMA.TABLES
			WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_NAME = @p1
		`
	default:
		return false, fmt.Errorf("unsupported database dialect: %s", dialect)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, r.table).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration table: %w", err)
	}

	return count > 0, nil
}

// MaxBatch returns the highest recorded batch, or 0 for an empty ledger.
func (r *HistoryRepositoryImpl) MaxBatch(ctx context.Context) (int, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database adapter not initialized")
	}

	query := fmt.Sprintf("SELECT COALESCE(MAX(batch), 0) FROM %s", r.db.GetDialect().QuoteIdent(r.table))

	var batch int
	if err := r.db.QueryRow(ctx, query).Scan(&batch); err != nil {
		return 0, fmt.Errorf("failed to query last batch: %w", err)
	}

	return batch, nil
}

// Append inserts every entry in a single transaction. Either all rows are
// recorded or none are.
func (r *HistoryRepositoryImpl) Append(ctx context.Context, entries []domain.LedgerEntry) error {
	if r.db == nil {
		return fmt.Errorf("database adapter not initialized")
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	for start := 0; start < len(entries); start += insertChunk {
		end := start + insertChunk
		if end > len(entries) {
			end = len(entries)
		}

		query, args := r.insertStatement(entries[start:end])
		if _, err := tx.Execute(ctx, query, args...); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				debug.Warn("Rollback failed", "error", rbErr)
			}
			return fmt.Errorf("failed to insert migrations: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}

	debug.Debug("Appended ledger entries", "table", r.table, "count", len(entries))
	return nil
}

// insertStatement builds one multi-row INSERT for the entries.
func (r *HistoryRepositoryImpl) insertStatement(entries []domain.LedgerEntry) (string, []interface{}) {
	dialect := r.db.GetDialect()

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s, %s) VALUES ",
		dialect.QuoteIdent(r.table), dialect.QuoteIdent("migration"), dialect.QuoteIdent("batch"))

	args := make([]interface{}, 0, len(entries)*2)
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "(%s, %s)", dialect.Placeholder(len(args)+1), dialect.Placeholder(len(args)+2))
		args = append(args, e.Migration, e.Batch)
	}

	return b.String(), args
}

// Entries retrieves every ledger row ordered by batch, then identifier.
func (r *HistoryRepositoryImpl) Entries(ctx context.Context) ([]domain.LedgerEntry, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database adapter not initialized")
	}

	dialect := r.db.GetDialect()
	query := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s, %s",
		dialect.QuoteIdent("migration"), dialect.QuoteIdent("batch"), dialect.QuoteIdent(r.table),
		dialect.QuoteIdent("batch"), dialect.QuoteIdent("migration"))

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.Migration, &e.Batch); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read migration history: %w", err)
	}

	return entries, nil
}

// Ensure HistoryRepositoryImpl implements HistoryRepository interface.
var _ HistoryRepository = (*HistoryRepositoryImpl)(nil)
