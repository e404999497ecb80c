package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/satishbabariya/migconvert/internal/debug"
)

// ErrNotConnected is returned when the adapter is used before Connect.
var ErrNotConnected = errors.New("database not connected")

// DefaultConnectTimeout bounds the initial ping when none is configured.
const DefaultConnectTimeout = 10 * time.Second

// SQLAdapter implements Adapter on top of database/sql. Driver packages
// construct it with their driver name, DSN and pool tuning.
type SQLAdapter struct {
	driver  string
	dsn     string
	dialect SQLDialect
	config  Config
	tune    func(db *sql.DB)
	db      *sql.DB
}

// NewSQLAdapter creates an adapter for a registered database/sql driver.
// tune, when set, replaces the default pool settings.
func NewSQLAdapter(driver, dsn string, dialect SQLDialect, config Config, tune func(db *sql.DB)) *SQLAdapter {
	return &SQLAdapter{
		driver:  driver,
		dsn:     dsn,
		dialect: dialect,
		config:  config,
		tune:    tune,
	}
}

// Connect opens the pool and pings the server.
func (a *SQLAdapter) Connect(ctx context.Context) error {
	db, err := sql.Open(a.driver, a.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if a.tune != nil {
		a.tune(db)
	} else {
		if a.config.MaxConnections > 0 {
			db.SetMaxOpenConns(a.config.MaxConnections)
			db.SetMaxIdleConns(a.config.MaxConnections / 2)
		}
		if a.config.MaxIdleTime > 0 {
			db.SetConnMaxIdleTime(time.Duration(a.config.MaxIdleTime) * time.Second)
		}
	}

	timeout := DefaultConnectTimeout
	if a.config.ConnectTimeout > 0 {
		timeout = time.Duration(a.config.ConnectTimeout) * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	debug.Debug("Connected to database", "dialect", a.dialect)

	a.db = db
	return nil
}

// Disconnect closes the database connection.
func (a *SQLAdapter) Disconnect(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// Execute executes a query without returning rows.
func (a *SQLAdapter) Execute(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if a.db == nil {
		return nil, ErrNotConnected
	}
	return a.db.ExecContext(ctx, query, args...)
}

// Query executes a query that returns rows.
func (a *SQLAdapter) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if a.db == nil {
		return nil, ErrNotConnected
	}
	return a.db.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns a single row.
func (a *SQLAdapter) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	if a.db == nil {
		return nil
	}
	return a.db.QueryRowContext(ctx, query, args...)
}

// Begin starts a new transaction.
func (a *SQLAdapter) Begin(ctx context.Context) (Transaction, error) {
	if a.db == nil {
		return nil, ErrNotConnected
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &SQLTransaction{tx: tx}, nil
}

// Ping checks if the database connection is alive.
func (a *SQLAdapter) Ping(ctx context.Context) error {
	if a.db == nil {
		return ErrNotConnected
	}
	return a.db.PingContext(ctx)
}

// GetDialect returns the SQL dialect.
func (a *SQLAdapter) GetDialect() SQLDialect {
	return a.dialect
}

// SQLTransaction implements the Transaction interface.
type SQLTransaction struct {
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *SQLTransaction) Commit() error {
	return t.tx.Commit()
}

// Rollback rolls back the transaction.
func (t *SQLTransaction) Rollback() error {
	return t.tx.Rollback()
}

// Execute executes a query within the transaction.
func (t *SQLTransaction) Execute(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

// Query executes a query within the transaction.
func (t *SQLTransaction) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

// Ensure SQLAdapter implements Adapter interface.
var _ Adapter = (*SQLAdapter)(nil)

// Ensure SQLTransaction implements Transaction interface.
var _ Transaction = (*SQLTransaction)(nil)
