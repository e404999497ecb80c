package introspector

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
	"github.com/satishbabariya/migconvert/internal/debug"
)

// MariaDB reports COLUMN_DEFAULT as a SQL expression from this release on.
var mariaDBQuotedDefaults = version.Must(version.NewVersion("10.2.7"))

var leadingVersion = regexp.MustCompile(`^\d+(\.\d+)*`)

const mysqlColumnsQuery = `
	SELECT
		column_name,
		column_type,
		is_nullable,
		column_default,
		column_key,
		extra,
		ordinal_position
	FROM information_schema.columns
	WHERE table_schema = DATABASE() AND table_name = ?
	ORDER BY ordinal_position
`

func (i *DatabaseIntrospector) mysqlColumns(ctx context.Context, table string) ([]domain.Column, error) {
	quoted, err := i.mysqlQuotesDefaults(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := i.db.Query(ctx, mysqlColumnsQuery, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []domain.Column
	for rows.Next() {
		var (
			col          domain.Column
			nullable     string
			defaultValue sql.NullString
		)
		if err := rows.Scan(&col.Name, &col.RawType, &nullable, &defaultValue, &col.Key, &col.Extra, &col.OrdinalPosition); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		col.Nullable = nullable == "YES"
		if defaultValue.Valid {
			if quoted {
				col.Default = unquoteDefault(defaultValue.String)
			} else {
				v := defaultValue.String
				col.Default = &v
			}
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	return columns, nil
}

// mysqlQuotesDefaults reports whether the server returns defaults as SQL
// expressions, which is the case for MariaDB 10.2.7 and later.
func (i *DatabaseIntrospector) mysqlQuotesDefaults(ctx context.Context) (bool, error) {
	if i.mysqlQuoted != nil {
		return *i.mysqlQuoted, nil
	}

	var raw string
	if err := i.db.QueryRow(ctx, "SELECT VERSION()").Scan(&raw); err != nil {
		return false, fmt.Errorf("failed to read server version: %w", err)
	}

	quoted := QuotesDefaults(raw)
	debug.Debug("Detected server version", "version", raw, "quotedDefaults", quoted)

	i.mysqlQuoted = &quoted
	return quoted, nil
}

// QuotesDefaults reports whether a MySQL-family server version string
// belongs to a MariaDB release that reports defaults as SQL expressions.
func QuotesDefaults(serverVersion string) bool {
	if !strings.Contains(strings.ToLower(serverVersion), "mariadb") {
		return false
	}
	// Replication builds prefix the real version with 5.5.5-.
	raw := strings.TrimPrefix(serverVersion, "5.5.5-")
	v, err := version.NewVersion(leadingVersion.FindString(raw))
	if err != nil {
		return false
	}
	return v.GreaterThanOrEqual(mariaDBQuotedDefaults)
}
