// Package mapper maps raw column metadata to Blueprint field declarations.
package mapper

import (
	"regexp"
	"strings"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

// typeKeyword pairs a raw type substring with the clause it emits.
type typeKeyword struct {
	keyword string
	kind    domain.ClauseKind
}

// primitiveTypes are checked in order; the first match wins.
var primitiveTypes = []typeKeyword{
	{"bigint", domain.ClauseBigInteger},
	{"tinyint", domain.ClauseBoolean},
	{"int", domain.ClauseInteger},
}

// additionalTypes are checked independently of each other and of primitiveTypes,
// so one raw type may emit several type clauses.
var additionalTypes = []typeKeyword{
	{"text", domain.ClauseText},
	{"timestamp", domain.ClauseTimestamp},
	{"datetime", domain.ClauseDateTime},
	{"double", domain.ClauseDouble},
	{"varchar", domain.ClauseString},
}

const (
	unsignedMarker      = "unsigned"
	autoIncrementMarker = "auto_increment"
	primaryKeyMarker    = "pri"
)

var numericLiteral = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Map converts one column into its field declaration.
// Clause order is type(s), unsigned, auto-increment, primary, nullable-or-default.
func Map(column domain.Column) domain.FieldDeclaration {
	rawType := strings.ToLower(column.RawType)
	decl := domain.FieldDeclaration{Column: column.Name}

	for _, p := range primitiveTypes {
		if strings.Contains(rawType, p.keyword) {
			decl.Clauses = append(decl.Clauses, domain.Clause{Kind: p.kind, Column: column.Name})
			break
		}
	}

	for _, a := range additionalTypes {
		if strings.Contains(rawType, a.keyword) {
			decl.Clauses = append(decl.Clauses, domain.Clause{Kind: a.kind, Column: column.Name})
		}
	}

	if strings.Contains(rawType, unsignedMarker) {
		decl.Clauses = append(decl.Clauses, domain.Clause{Kind: domain.ClauseUnsigned})
	}
	if strings.Contains(strings.ToLower(column.Extra), autoIncrementMarker) {
		decl.Clauses = append(decl.Clauses, domain.Clause{Kind: domain.ClauseAutoIncrement})
	}
	if strings.Contains(strings.ToLower(column.Key), primaryKeyMarker) {
		decl.Clauses = append(decl.Clauses, domain.Clause{Kind: domain.ClausePrimary})
	}

	switch {
	case column.Nullable:
		decl.Clauses = append(decl.Clauses, domain.Clause{Kind: domain.ClauseNullable})
	case column.Default != nil:
		decl.Clauses = append(decl.Clauses, domain.Clause{
			Kind:    domain.ClauseDefault,
			Value:   *column.Default,
			Numeric: IsNumeric(*column.Default),
		})
	}

	return decl
}

// MapColumns maps every column, preserving ordinal order.
func MapColumns(columns []domain.Column) []domain.FieldDeclaration {
	fields := make([]domain.FieldDeclaration, 0, len(columns))
	for _, c := range columns {
		fields = append(fields, Map(c))
	}
	return fields
}

// IsNumeric reports whether a default literal can be emitted unquoted.
func IsNumeric(value string) bool {
	return numericLiteral.MatchString(value)
}
