package introspector

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

const sqliteColumnsQuery = `
	SELECT cid, name, type, "notnull", dflt_value, pk
	FROM pragma_table_info(?)
	ORDER BY cid
`

func (i *DatabaseIntrospector) sqliteColumns(ctx context.Context, table string) ([]domain.Column, error) {
	rows, err := i.db.Query(ctx, sqliteColumnsQuery, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var (
		columns []domain.Column
		pkCount int
		rowid   = -1
	)
	for rows.Next() {
		var (
			col          domain.Column
			cid, notnull int
			pk           int
			defaultValue sql.NullString
		)
		if err := rows.Scan(&cid, &col.Name, &col.RawType, &notnull, &defaultValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}

		col.OrdinalPosition = cid + 1
		col.Nullable = notnull == 0 && pk == 0
		if pk > 0 {
			col.Key = "PRI"
			pkCount++
			if strings.EqualFold(col.RawType, "integer") {
				rowid = len(columns)
			}
		}
		if defaultValue.Valid {
			col.Default = sqliteDefault(defaultValue.String)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	// A lone INTEGER PRIMARY KEY aliases the rowid and auto-increments.
	if pkCount == 1 && rowid >= 0 {
		columns[rowid].Extra = "auto_increment"
	}

	return columns, nil
}
