package repository

import (
	"context"
	"fmt"

	"github.com/satishbabariya/migconvert/internal/adapters/storage"
	"github.com/satishbabariya/migconvert/internal/core/migration/scanner"
)

// ManifestRepositoryImpl stores the manifest as YAML through storage.
type ManifestRepositoryImpl struct {
	storage storage.Storage
}

// NewManifestRepository creates a new manifest repository.
func NewManifestRepository(store storage.Storage) *ManifestRepositoryImpl {
	return &ManifestRepositoryImpl{
		storage: store,
	}
}

// Load loads the manifest at path.
func (r *ManifestRepositoryImpl) Load(ctx context.Context, path string) (*scanner.Manifest, error) {
	exists, err := r.storage.Exists(ctx, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return scanner.NewManifest(), nil
	}

	content, err := r.storage.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	manifest, err := scanner.ParseManifest(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return manifest, nil
}

// Save writes the manifest to path.
func (r *ManifestRepositoryImpl) Save(ctx context.Context, path string, manifest *scanner.Manifest) error {
	content, err := manifest.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := r.storage.Write(ctx, path, content); err != nil {
		return fmt.Errorf("failed to save manifest %s: %w", path, err)
	}
	return nil
}

// Ensure ManifestRepositoryImpl implements ManifestRepository interface.
var _ ManifestRepository = (*ManifestRepositoryImpl)(nil)
