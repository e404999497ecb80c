package introspector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

const sqlserverColumnsQuery = `
	SELECT
		c.COLUMN_NAME,
		c.DATA_TYPE,
		c.CHARACTER_MAXIMUM_LENGTH,
		c.IS_NULLABLE,
		c.COLUMN_DEFAULT,
		COLUMNPROPERTY(OBJECT_ID(QUOTENAME(c.TABLE_SCHEMA) + '.' + QUOTENAME(c.TABLE_NAME)), c.COLUMN_NAME, 'IsIdentity'),
		c.ORDINAL_POSITION,
		CASE WHEN EXISTS (
			SELECT 1
			FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
			JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
				ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
				AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA
				AND tc.TABLE_NAME = kcu.TABLE_NAME
			WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
				AND tc.TABLE_SCHEMA = c.TABLE_SCHEMA
				AND tc.TABLE_NAME = c.TABLE_NAME
				AND kcu.COLUMN_NAME = c.COLUMN_NAME
		) THEN 1 ELSE 0 END
	FROM INFORMATION_SCHEMA.COLUMNS c
	WHERE c.TABLE_SCHEMA = SCHEMA_NAME() AND c.TABLE_NAME = @p1
	ORDER BY c.ORDINAL_POSITION
`

func (i *DatabaseIntrospector) sqlserverColumns(ctx context.Context, table string) ([]domain.Column, error) {
	rows, err := i.db.Query(ctx, sqlserverColumnsQuery, table)
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
			identity     sql.NullInt64
			primary      int
		)
		if err := rows.Scan(&col.Name, &dataType, &length, &nullable, &defaultValue, &identity, &col.OrdinalPosition, &primary); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}

		var lp *int64
		if length.Valid {
			lp = &length.Int64
		}
		col.RawType = sqlserverType(dataType, lp)
		col.Nullable = nullable == "YES"
		if primary == 1 {
			col.Key = "PRI"
		}
		if identity.Int64 == 1 {
			col.Extra = "auto_increment"
		}
		if defaultValue.Valid {
			col.Default = sqlserverDefault(defaultValue.String)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	return columns, nil
}
