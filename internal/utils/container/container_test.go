package container

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/migconvert/internal/adapters/database"
	"github.com/satishbabariya/migconvert/internal/config"
	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
	"github.com/satishbabariya/migconvert/internal/service"
)

func withMemFs(t *testing.T) afero.Fs {
	t.Helper()
	prev := config.AppFs
	fs := afero.NewMemMapFs()
	config.AppFs = fs
	t.Cleanup(func() { config.AppFs = prev })
	return fs
}

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Provider: "sqlite", URL: ":memory:"},
		Migrations: config.MigrationsConfig{
			BasePath:     "/app",
			Path:         "database/migrations",
			Extension:    ".php",
			HistoryTable: "migrations",
			Storage:      "filesystem",
		},
	}
}

func TestCreateDatabaseAdapter(t *testing.T) {
	tests := []struct {
		provider string
		url      string
		dialect  database.SQLDialect
	}{
		{"postgresql", "postgres://localhost/app", database.PostgreSQL},
		{"mysql", "mysql://root@localhost/app", database.MySQL},
		{"mariadb", "root@tcp(localhost:3306)/app", database.MySQL},
		{"sqlite", ":memory:", database.SQLite},
		{"sqlserver", "sqlserver://sa@localhost", database.SQLServer},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			adapter, err := createDatabaseAdapter(config.DatabaseConfig{Provider: tt.provider, URL: tt.url})
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, adapter.GetDialect())
		})
	}

	_, err := createDatabaseAdapter(config.DatabaseConfig{Provider: "oracle", URL: "oracle://x"})
	assert.Error(t, err)

	_, err = createDatabaseAdapter(config.DatabaseConfig{Provider: "mysql"})
	assert.Error(t, err)
}

func TestNewContainer(t *testing.T) {
	withMemFs(t)
	ctx := context.Background()

	c, err := NewContainer(ctx, testConfig())
	require.NoError(t, err)
	defer c.Close(ctx)

	require.NotNil(t, c.ConvertService())
	assert.Equal(t, "migrations", c.Config().Migrations.HistoryTable)

	_, err = c.ConvertService().Convert(ctx, testConvertInput())
	assert.ErrorIs(t, err, domain.ErrMissingHistoryStore)
}

func TestNewContainer_InvalidStub(t *testing.T) {
	fs := withMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/app/stubs/create.stub", []byte("<?php // empty"), 0644))

	cfg := testConfig()
	cfg.Migrations.Stub = "stubs/create.stub"

	_, err := NewContainer(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidStub)
}

func testConvertInput() service.ConvertInput {
	return service.ConvertInput{
		Destination: "/app/database/migrations",
		ScanPaths:   []string{"/app/database/migrations"},
	}
}
