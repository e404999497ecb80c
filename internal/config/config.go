// Package config provides configuration management.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the file system configuration and migrations are read from.
var AppFs = afero.NewOsFs()

// Config represents application configuration.
type Config struct {
	Database   DatabaseConfig
	Migrations MigrationsConfig
	Debug      bool
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	Provider       string
	URL            string
	MaxConnections int
	MaxIdleTime    int
	ConnectTimeout int
}

// MigrationsConfig describes where migrations live and how they are named.
type MigrationsConfig struct {
	// BasePath anchors relative paths. Defaults to the working directory.
	BasePath string
	// Path is the default migrations directory, relative to BasePath.
	Path string
	// Paths are extra directories scanned for existing migrations.
	Paths []string
	// Extension of migration sources.
	Extension string
	// HistoryTable is the ledger table name.
	HistoryTable string
	// Stub is an optional custom stub file.
	Stub string
	// Manifest is an optional YAML registry of table to migration.
	Manifest string
	// Storage selects the storage adapter: filesystem or memory.
	Storage string
}

// Keys understood by viper.
const (
	KeyProvider       = "provider"
	KeyDatabaseURL    = "database_url"
	KeyMaxConnections = "max_connections"
	KeyMaxIdleTime    = "max_idle_time"
	KeyConnectTimeout = "connect_timeout"
	KeyBasePath       = "base_path"
	KeyMigrationsPath = "migrations_path"
	KeyMigrationPaths = "migration_paths"
	KeyExtension      = "extension"
	KeyHistoryTable   = "history_table"
	KeyStub           = "stub"
	KeyManifest       = "manifest"
	KeyStorage        = "storage"
	KeyDebug          = "debug"
)

// LoadConfig loads configuration from the config file, .env files and the
// environment into the global viper instance.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	v := viper.GetViper()
	v.SetConfigName(".migconvert")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", "migconvert"))

	// A missing config file is fine; a broken one is not.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	loadDotEnv()

	return Load(v)
}

// loadDotEnv loads .env, then .env.local with higher priority.
func loadDotEnv() {
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}
}

// SetDefaults registers default values.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix("MIGCONVERT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyMaxConnections, 4)
	v.SetDefault(KeyMaxIdleTime, 60)
	v.SetDefault(KeyConnectTimeout, 10)
	v.SetDefault(KeyMigrationsPath, filepath.Join("database", "migrations"))
	v.SetDefault(KeyExtension, ".php")
	v.SetDefault(KeyHistoryTable, "migrations")
	v.SetDefault(KeyStorage, "filesystem")
	v.SetDefault(KeyDebug, false)
}

// Load builds a Config from a viper instance.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	basePath, err := resolveBasePath(v.GetString(KeyBasePath))
	if err != nil {
		return nil, err
	}

	dbURL := v.GetString(KeyDatabaseURL)
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		dbURL = urlFromLaravelEnv()
	}

	provider := v.GetString(KeyProvider)
	if provider == "" {
		provider = DetectProvider(dbURL)
	}

	paths := make([]string, 0, len(v.GetStringSlice(KeyMigrationPaths)))
	for _, p := range v.GetStringSlice(KeyMigrationPaths) {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("invalid migration path %q: %w", p, err)
		}
		paths = append(paths, expanded)
	}

	stub, err := homedir.Expand(v.GetString(KeyStub))
	if err != nil {
		return nil, fmt.Errorf("invalid stub path: %w", err)
	}

	return &Config{
		Database: DatabaseConfig{
			Provider:       provider,
			URL:            dbURL,
			MaxConnections: v.GetInt(KeyMaxConnections),
			MaxIdleTime:    v.GetInt(KeyMaxIdleTime),
			ConnectTimeout: v.GetInt(KeyConnectTimeout),
		},
		Migrations: MigrationsConfig{
			BasePath:     basePath,
			Path:         v.GetString(KeyMigrationsPath),
			Paths:        paths,
			Extension:    v.GetString(KeyExtension),
			HistoryTable: v.GetString(KeyHistoryTable),
			Stub:         stub,
			Manifest:     v.GetString(KeyManifest),
			Storage:      v.GetString(KeyStorage),
		},
		Debug: v.GetBool(KeyDebug),
	}, nil
}

func resolveBasePath(raw string) (string, error) {
	if raw == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		return wd, nil
	}
	expanded, err := homedir.Expand(raw)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	return filepath.Abs(expanded)
}

// DetectProvider infers the provider from a connection URL.
func DetectProvider(dbURL string) string {
	lower := strings.ToLower(dbURL)
	switch {
	case strings.HasPrefix(lower, "mysql://"), strings.Contains(lower, "@tcp("):
		return "mysql"
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgresql"
	case strings.HasPrefix(lower, "sqlserver://"), strings.HasPrefix(lower, "mssql://"):
		return "sqlserver"
	case strings.HasPrefix(lower, "sqlite"), strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), lower == ":memory:":
		return "sqlite"
	default:
		return ""
	}
}

// urlFromLaravelEnv builds a URL from the DB_* variables of a Laravel .env.
func urlFromLaravelEnv() string {
	conn := os.Getenv("DB_CONNECTION")
	dbName := os.Getenv("DB_DATABASE")
	if conn == "" {
		return ""
	}

	scheme := map[string]string{
		"mysql":   "mysql",
		"mariadb": "mysql",
		"pgsql":   "postgres",
		"sqlsrv":  "sqlserver",
	}[conn]

	if conn == "sqlite" {
		return dbName
	}
	if scheme == "" {
		return ""
	}

	u := url.URL{
		Scheme: scheme,
		Host:   os.Getenv("DB_HOST"),
		Path:   "/" + dbName,
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		u.Host += ":" + port
	}
	if user := os.Getenv("DB_USERNAME"); user != "" {
		u.User = url.UserPassword(user, os.Getenv("DB_PASSWORD"))
	}
	if scheme == "sqlserver" {
		u.Path = ""
		u.RawQuery = url.Values{"database": {dbName}}.Encode()
	}
	return u.String()
}

// MigrationPath returns the destination directory. An explicit path is
// relative to BasePath unless realpath is set.
func (c *MigrationsConfig) MigrationPath(path string, realpath bool) string {
	if path == "" {
		return c.resolve(c.Path)
	}
	if realpath {
		return path
	}
	return filepath.Join(c.BasePath, path)
}

// ScanPaths returns the directories holding existing migrations. An
// explicit path replaces the configured ones.
func (c *MigrationsConfig) ScanPaths(path string, realpath bool) []string {
	if path != "" {
		return []string{c.MigrationPath(path, realpath)}
	}

	paths := []string{c.resolve(c.Path)}
	for _, p := range c.Paths {
		paths = append(paths, c.resolve(p))
	}
	return paths
}

// ManifestPath returns the resolved manifest path, or "" when unset.
func (c *MigrationsConfig) ManifestPath() string {
	if c.Manifest == "" {
		return ""
	}
	return c.resolve(c.Manifest)
}

// StubPath returns the resolved custom stub path, or "" when unset.
func (c *MigrationsConfig) StubPath() string {
	if c.Stub == "" {
		return ""
	}
	return c.resolve(c.Stub)
}

func (c *MigrationsConfig) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BasePath, p)
}
