package introspector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

const postgresColumnsQuery = `
	SELECT
		c.column_name,
		c.data_type,
		c.character_maximum_length,
		c.is_nullable,
		c.column_default,
		c.is_identity,
		c.ordinal_position,
		EXISTS (
			SELECT 1
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON tc.constraint_name = kcu.constraint_name
				AND tc.table_schema = kcu.table_schema
				AND tc.table_name = kcu.table_name
			WHERE tc.constraint_type = 'PRIMARY KEY'
				AND tc.table_schema = c.table_schema
				AND tc.table_name = c.table_name
				AND kcu.column_name = c.column_name
		) AS is_primary
	FROM information_schema.columns c
	WHERE c.table_schema = current_schema() AND c.table_name = $1
	ORDER BY c.ordinal_position
`

func (i *DatabaseIntrospector) postgresColumns(ctx context.Context, table string) ([]domain.Column, error) {
	rows, err := i.db.Query(ctx, postgresColumnsQuery, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []domain.Column
	for rows.Next() {
		var (
			col          domain.Column
			dataType     string
			length       sql.NullInt64
			nullable     string
			defaultValue sql.NullString
			identity     sql.NullString
			primary      bool
		)
		if err := rows.Scan(&col.Name, &dataType, &length, &nullable, &defaultValue, &identity, &col.OrdinalPosition, &primary); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}

		var lp *int64
		if length.Valid {
			lp = &length.Int64
		}
		col.RawType = postgresType(dataType, lp)
		col.Nullable = nullable == "YES"
		if primary {
			col.Key = "PRI"
		}
		if identity.String == "YES" {
			col.Extra = "auto_increment"
		}
		if defaultValue.Valid {
			value, serial := postgresDefault(defaultValue.String)
			if serial {
				col.Extra = "auto_increment"
			}
			col.Default = value
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	return columns, nil
}
