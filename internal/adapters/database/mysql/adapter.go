// Package mysql implements MySQL database adapter.
package mysql

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/satishbabariya/migconvert/internal/adapters/database"
)

// NewMySQLAdapter creates a new MySQL adapter. The URL may be a driver DSN
// (user:pass@tcp(host:3306)/db) or a mysql:// URL.
func NewMySQLAdapter(config database.Config) (*database.SQLAdapter, error) {
	dsn, err := DSN(config.URL)
	if err != nil {
		return nil, err
	}
	return database.NewSQLAdapter("mysql", dsn, database.MySQL, config, nil), nil
}

// DSN converts a connection URL into a go-sql-driver DSN.
func DSN(raw string) (string, error) {
	if !strings.HasPrefix(raw, "mysql://") {
		cfg, err := mysql.ParseDSN(raw)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		return cfg.FormatDSN(), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid mysql url: %w", err)
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = u.Host + ":3306"
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	if len(u.Query()) > 0 {
		cfg.Params = make(map[string]string, len(u.Query()))
		for k := range u.Query() {
			cfg.Params[k] = u.Query().Get(k)
		}
	}
	return cfg.FormatDSN(), nil
}
