package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/satishbabariya/migconvert/internal/adapters/storage"
	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

// DefaultExtension is the file extension of migration sources.
const DefaultExtension = ".php"

// SourceRepositoryImpl reads migration sources from storage.
type SourceRepositoryImpl struct {
	storage   storage.Storage
	extension string
}

// NewSourceRepository creates a new source repository.
func NewSourceRepository(store storage.Storage, extension string) *SourceRepositoryImpl {
	if extension == "" {
		extension = DefaultExtension
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return &SourceRepositoryImpl{
		storage:   store,
		extension: extension,
	}
}

// ListSources reads every migration source in the given directories. When
// two directories hold the same identifier the first one wins. Missing
// directories contribute nothing.
func (r *SourceRepositoryImpl) ListSources(ctx context.Context, paths []string) ([]domain.MigrationSource, error) {
	seen := make(map[string]bool)
	var sources []domain.MigrationSource

	for _, dir := range paths {
		names, err := r.storage.List(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list migrations in %s: %w", dir, err)
		}

		for _, name := range names {
			if filepath.Ext(name) != r.extension {
				continue
			}
			id := strings.TrimSuffix(name, r.extension)
			if seen[id] {
				continue
			}
			seen[id] = true

			path := filepath.Join(dir, name)
			content, err := r.storage.Read(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("failed to read migration %s: %w", path, err)
			}

			sources = append(sources, domain.MigrationSource{
				ID:   id,
				Path: path,
				Text: string(content),
			})
		}
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].ID < sources[j].ID
	})

	return sources, nil
}

// Ensure SourceRepositoryImpl implements SourceRepository interface.
var _ SourceRepository = (*SourceRepositoryImpl)(nil)
