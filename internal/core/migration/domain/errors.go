package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingHistoryStore indicates that the migrations ledger table does not exist.
	ErrMissingHistoryStore = errors.New("migration table not found")

	// ErrFileWrite indicates that a migration file could not be written.
	ErrFileWrite = errors.New("failed to write migration file")

	// ErrLedgerAppend indicates that ledger rows could not be appended.
	ErrLedgerAppend = errors.New("failed to append migration ledger entries")

	// ErrInvalidStub indicates that a migration stub lacks a required placeholder.
	ErrInvalidStub = errors.New("invalid migration stub")
)

// FileWriteError wraps a failed migration write with its destination.
type FileWriteError struct {
	Path string
	Err  error
}

// NewFileWriteError creates a new FileWriteError.
func NewFileWriteError(path string, err error) *FileWriteError {
	return &FileWriteError{Path: path, Err: err}
}

// Error implements the error interface.
func (e *FileWriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrFileWrite, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileWriteError) Unwrap() error {
	return e.Err
}

// Is matches ErrFileWrite.
func (e *FileWriteError) Is(target error) bool {
	return target == ErrFileWrite
}

// LedgerAppendError wraps a failed ledger append. Files named in
// Migrations were already written when this error is raised.
type LedgerAppendError struct {
	Batch      int
	Migrations []string
	Err        error
}

// NewLedgerAppendError creates a new LedgerAppendError.
func NewLedgerAppendError(batch int, migrations []string, err error) *LedgerAppendError {
	return &LedgerAppendError{Batch: batch, Migrations: migrations, Err: err}
}

// Error implements the error interface.
func (e *LedgerAppendError) Error() string {
	return fmt.Sprintf("%s (batch %d: %s): %v", ErrLedgerAppend, e.Batch, strings.Join(e.Migrations, ", "), e.Err)
}

// Unwrap returns the underlying error.
func (e *LedgerAppendError) Unwrap() error {
	return e.Err
}

// Is matches ErrLedgerAppend.
func (e *LedgerAppendError) Is(target error) bool {
	return target == ErrLedgerAppend
}
