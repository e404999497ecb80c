// Package storage provides a factory for creating storage adapters.
package storage

import (
	"fmt"

	"github.com/spf13/afero"
)

// StorageType represents the type of storage.
type StorageType string

const (
	// TypeFilesystem is the filesystem storage type.
	TypeFilesystem StorageType = "filesystem"

	// TypeMemory is the in-memory storage type. Writes never reach the disk.
	TypeMemory StorageType = "memory"
)

// NewStorage creates a new storage adapter based on configuration.
// Memory storage reads through to fs so existing files stay visible.
func NewStorage(fs afero.Fs, config *Config) (Storage, error) {
	if config == nil {
		config = &Config{Type: string(TypeFilesystem)}
	}

	switch StorageType(config.Type) {
	case TypeFilesystem, "":
		return NewFilesystemStorage(fs, config.BasePath), nil

	case TypeMemory:
		overlay := afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(fs), afero.NewMemMapFs())
		return NewFilesystemStorage(overlay, config.BasePath), nil

	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.Type)
	}
}
