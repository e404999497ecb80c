package introspector

import (
	"fmt"
	"regexp"
	"strings"
)

var castSuffix = regexp.MustCompile(`::[\w\s."]+(\[\])?$`)

// unquoteDefault turns a default reported as a SQL expression into the
// literal value. NULL becomes nil; a quoted string loses its quotes and
// doubled quotes collapse; anything else is returned as written.
func unquoteDefault(expr string) *string {
	expr = strings.TrimSpace(expr)
	if strings.EqualFold(expr, "null") {
		return nil
	}
	if len(expr) >= 2 && expr[0] == '\'' && expr[len(expr)-1] == '\'' {
		v := strings.ReplaceAll(expr[1:len(expr)-1], "''", "'")
		return &v
	}
	return &expr
}

// stripParens removes balanced parentheses wrapping the whole expression.
func stripParens(expr string) string {
	for len(expr) >= 2 && expr[0] == '(' && expr[len(expr)-1] == ')' && wraps(expr) {
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	}
	return expr
}

// wraps reports whether the first parenthesis closes at the last byte.
func wraps(expr string) bool {
	depth := 0
	inQuote := false
	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; {
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 && i != len(expr)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// postgresDefault normalises a PostgreSQL column default. Sequence defaults
// mark the column auto-incrementing and carry no default value.
func postgresDefault(expr string) (value *string, autoIncrement bool) {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "nextval(") {
		return nil, true
	}
	expr = castSuffix.ReplaceAllString(expr, "")
	return unquoteDefault(stripParens(expr)), false
}

// postgresType maps an information_schema data type to the MySQL spelling.
func postgresType(dataType string, length *int64) string {
	switch dataType {
	case "character varying":
		return sized("varchar", length)
	case "character":
		return sized("char", length)
	case "double precision":
		return "double"
	case "real":
		return "float"
	case "boolean":
		return "tinyint(1)"
	case "integer":
		return "int"
	case "timestamp without time zone", "timestamp with time zone":
		return "timestamp"
	case "time without time zone", "time with time zone":
		return "time"
	default:
		return dataType
	}
}

// sqlserverDefault normalises a SQL Server column default such as ((0)) or
// (N'abc').
func sqlserverDefault(expr string) *string {
	expr = stripParens(strings.TrimSpace(expr))
	if strings.HasPrefix(expr, "N'") {
		expr = expr[1:]
	}
	return unquoteDefault(expr)
}

// sqlserverType maps a SQL Server data type to the MySQL spelling.
func sqlserverType(dataType string, length *int64) string {
	switch strings.ToLower(dataType) {
	case "varchar", "nvarchar":
		if length != nil && *length < 0 {
			return "text"
		}
		return sized("varchar", length)
	case "char", "nchar":
		return sized("char", length)
	case "ntext":
		return "text"
	case "float":
		return "double"
	case "bit":
		return "tinyint(1)"
	case "datetime2", "smalldatetime", "datetimeoffset":
		return "datetime"
	default:
		return strings.ToLower(dataType)
	}
}

// sqliteDefault unquotes a SQLite column default.
func sqliteDefault(expr string) *string {
	expr = strings.TrimSpace(expr)
	if len(expr) >= 2 && expr[0] == '"' && expr[len(expr)-1] == '"' {
		v := strings.ReplaceAll(expr[1:len(expr)-1], `""`, `"`)
		return &v
	}
	return unquoteDefault(stripParens(expr))
}

func sized(name string, length *int64) string {
	if length == nil {
		return name
	}
	return fmt.Sprintf("%s(%d)", name, *length)
}
