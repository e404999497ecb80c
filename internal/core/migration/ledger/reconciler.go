// Package ledger records generated migrations as already applied.
package ledger

import (
	"context"
	"fmt"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
	"github.com/satishbabariya/migconvert/internal/debug"
)

// ConfirmQuestion is asked before the ledger is touched.
const ConfirmQuestion = "Would you like to add these files into migrations table and mark as ran?"

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, question string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, question string) (bool, error) {
	return f(ctx, question)
}

// AlwaysConfirm answers yes without asking.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

// HistoryStore is the persistent migration ledger.
type HistoryStore interface {
	// Exists reports whether the ledger table exists.
	Exists(ctx context.Context) (bool, error)

	// MaxBatch returns the highest recorded batch, or 0 when empty.
	MaxBatch(ctx context.Context) (int, error)

	// Append inserts all entries atomically.
	Append(ctx context.Context, entries []domain.LedgerEntry) error
}

// Reconciler appends generated identifiers to the ledger under one batch.
type Reconciler struct {
	history HistoryStore
}

// NewReconciler creates a new reconciler.
func NewReconciler(history HistoryStore) *Reconciler {
	return &Reconciler{history: history}
}

// Reconcile records identifiers with batch max+1 once the operator confirms.
// An empty list or a declined confirmation leaves the ledger untouched.
func (r *Reconciler) Reconcile(ctx context.Context, identifiers []string, confirm Confirmer) (*domain.ReconcileResult, error) {
	if len(identifiers) == 0 {
		return &domain.ReconcileResult{Skipped: true}, nil
	}

	if confirm == nil {
		confirm = AlwaysConfirm
	}
	ok, err := confirm.Confirm(ctx, ConfirmQuestion)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm ledger update: %w", err)
	}
	if !ok {
		debug.Debug("Ledger update declined", "migrations", len(identifiers))
		return &domain.ReconcileResult{Skipped: true}, nil
	}

	last, err := r.history.MaxBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read last batch: %w", err)
	}
	next := last + 1

	entries := make([]domain.LedgerEntry, len(identifiers))
	for i, id := range identifiers {
		entries[i] = domain.LedgerEntry{Migration: id, Batch: next}
	}

	if err := r.history.Append(ctx, entries); err != nil {
		return nil, domain.NewLedgerAppendError(next, identifiers, err)
	}

	debug.Debug("Ledger updated", "batch", next, "migrations", len(identifiers))

	return &domain.ReconcileResult{
		Batch:    next,
		Recorded: identifiers,
	}, nil
}
