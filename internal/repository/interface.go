// Package repository defines repository interfaces for data access.
package repository

import (
	"context"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
	"github.com/satishbabariya/migconvert/internal/core/migration/ledger"
	"github.com/satishbabariya/migconvert/internal/core/migration/scanner"
)

// SourceRepository reads existing migration sources.
type SourceRepository interface {
	// ListSources returns the migration sources found in the given
	// directories, ordered by identifier.
	ListSources(ctx context.Context, paths []string) ([]domain.MigrationSource, error)
}

// HistoryRepository defines the interface for migration ledger access.
type HistoryRepository interface {
	ledger.HistoryStore

	// Entries retrieves every ledger row ordered by batch, then identifier.
	Entries(ctx context.Context) ([]domain.LedgerEntry, error)
}

// ManifestRepository loads and stores the table manifest.
type ManifestRepository interface {
	// Load loads the manifest; a missing file yields an empty manifest.
	Load(ctx context.Context, path string) (*scanner.Manifest, error)

	// Save writes the manifest.
	Save(ctx context.Context, path string, manifest *scanner.Manifest) error
}
