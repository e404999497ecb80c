// Package container provides dependency injection.
package container

import (
	"context"
	"fmt"

	"github.com/satishbabariya/migconvert/internal/adapters/database"
	"github.com/satishbabariya/migconvert/internal/adapters/database/mysql"
	"github.com/satishbabariya/migconvert/internal/adapters/database/postgres"
	"github.com/satishbabariya/migconvert/internal/adapters/database/sqlite"
	"github.com/satishbabariya/migconvert/internal/adapters/database/sqlserver"
	"github.com/satishbabariya/migconvert/internal/adapters/storage"
	"github.com/satishbabariya/migconvert/internal/config"
	"github.com/satishbabariya/migconvert/internal/core/migration/introspector"
	"github.com/satishbabariya/migconvert/internal/core/migration/synthesizer"
	"github.com/satishbabariya/migconvert/internal/repository"
	"github.com/satishbabariya/migconvert/internal/service"
)

// Container holds all application dependencies.
type Container struct {
	// Configuration
	config *config.Config

	// Adapters
	dbAdapter database.Adapter
	storage   storage.Storage

	// Repositories
	sourceRepo   repository.SourceRepository
	historyRepo  repository.HistoryRepository
	manifestRepo repository.ManifestRepository

	// Services
	convertService *service.ConvertService
}

// NewContainer creates a new dependency injection container and connects
// to the configured database.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{
		config: cfg,
	}

	var err error
	c.storage, err = storage.NewStorage(config.AppFs, &storage.Config{
		Type:     cfg.Migrations.Storage,
		BasePath: cfg.Migrations.BasePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	stub, err := c.loadStub(ctx)
	if err != nil {
		return nil, err
	}
	synth, err := synthesizer.New(c.storage, stub, synthesizer.NewNamer(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to load stub: %w", err)
	}

	c.dbAdapter, err = createDatabaseAdapter(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create database adapter: %w", err)
	}
	if err := c.dbAdapter.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	c.sourceRepo = repository.NewSourceRepository(c.storage, cfg.Migrations.Extension)
	c.historyRepo = repository.NewHistoryRepository(c.dbAdapter, cfg.Migrations.HistoryTable)
	c.manifestRepo = repository.NewManifestRepository(c.storage)

	c.convertService = service.NewConvertService(
		introspector.NewDatabaseIntrospector(c.dbAdapter),
		c.sourceRepo,
		c.historyRepo,
		c.manifestRepo,
		synth,
		cfg.Migrations.HistoryTable,
	)

	return c, nil
}

func (c *Container) loadStub(ctx context.Context) (string, error) {
	path := c.config.Migrations.StubPath()
	if path == "" {
		return "", nil
	}
	content, err := c.storage.Read(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read stub: %w", err)
	}
	return string(content), nil
}

// Config returns the configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Database returns the connected database adapter.
func (c *Container) Database() database.Adapter {
	return c.dbAdapter
}

// ConvertService returns the convert service.
func (c *Container) ConvertService() *service.ConvertService {
	return c.convertService
}

// Close cleans up resources.
func (c *Container) Close(ctx context.Context) error {
	if c.dbAdapter != nil {
		return c.dbAdapter.Disconnect(ctx)
	}
	return nil
}

// createDatabaseAdapter creates the appropriate database adapter based on provider.
func createDatabaseAdapter(cfg config.DatabaseConfig) (database.Adapter, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("no database url configured (set --database-url, DATABASE_URL or DB_CONNECTION)")
	}

	dbConfig := database.Config{
		Provider:       cfg.Provider,
		URL:            cfg.URL,
		MaxConnections: cfg.MaxConnections,
		MaxIdleTime:    cfg.MaxIdleTime,
		ConnectTimeout: cfg.ConnectTimeout,
	}

	var adapter database.Adapter
	var err error

	switch cfg.Provider {
	case "postgresql", "postgres", "pgsql":
		adapter, err = postgres.NewPostgresAdapter(dbConfig)
	case "mysql", "mariadb":
		adapter, err = mysql.NewMySQLAdapter(dbConfig)
	case "sqlite", "sqlite3":
		adapter, err = sqlite.NewSQLiteAdapter(dbConfig)
	case "sqlserver", "mssql", "sqlsrv":
		adapter, err = sqlserver.NewSQLServerAdapter(dbConfig)
	default:
		return nil, fmt.Errorf("unsupported database provider: %q", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create adapter: %w", err)
	}

	return adapter, nil
}
