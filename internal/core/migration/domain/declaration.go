package domain

import (
	"fmt"
	"strings"
)

// ClauseKind identifies one call in a Blueprint column declaration.
type ClauseKind int

const (
	// ClauseBigInteger declares a big integer column.
	ClauseBigInteger ClauseKind = iota
	// ClauseBoolean declares a boolean column.
	ClauseBoolean
	// ClauseInteger declares an integer column.
	ClauseInteger
	// ClauseText declares a text column.
	ClauseText
	// ClauseTimestamp declares a timestamp column.
	ClauseTimestamp
	// ClauseDateTime declares a date-time column.
	ClauseDateTime
	// ClauseDouble declares a double column.
	ClauseDouble
	// ClauseString declares a string column.
	ClauseString
	// ClauseUnsigned marks the column unsigned.
	ClauseUnsigned
	// ClauseAutoIncrement marks the column auto-incrementing.
	ClauseAutoIncrement
	// ClausePrimary marks the column as primary key.
	ClausePrimary
	// ClauseNullable marks the column nullable.
	ClauseNullable
	// ClauseDefault sets the column default.
	ClauseDefault
)

var clauseMethods = map[ClauseKind]string{
	ClauseBigInteger:    "bigInteger",
	ClauseBoolean:       "boolean",
	ClauseInteger:       "integer",
	ClauseText:          "text",
	ClauseTimestamp:     "timestamp",
	ClauseDateTime:      "dateTime",
	ClauseDouble:        "double",
	ClauseString:        "string",
	ClauseUnsigned:      "unsigned",
	ClauseAutoIncrement: "autoIncrement",
	ClausePrimary:       "primary",
	ClauseNullable:      "nullable",
	ClauseDefault:       "default",
}

// Method returns the Blueprint method name for the clause kind.
func (k ClauseKind) Method() string {
	return clauseMethods[k]
}

// IsType reports whether the kind declares a column type.
func (k ClauseKind) IsType() bool {
	return k <= ClauseString
}

// String implements fmt.Stringer.
func (k ClauseKind) String() string {
	if m, ok := clauseMethods[k]; ok {
		return m
	}
	return fmt.Sprintf("ClauseKind(%d)", int(k))
}

// Clause is one semantic modifier of a field declaration.
type Clause struct {
	Kind ClauseKind
	// Column is set on type clauses.
	Column string
	// Value is the default literal, set on ClauseDefault only.
	Value string
	// Numeric renders Value unquoted.
	Numeric bool
}

// Render renders the clause as a method call.
func (c Clause) Render() string {
	switch {
	case c.Kind.IsType():
		return fmt.Sprintf("->%s(%s)", c.Kind.Method(), QuoteLiteral(c.Column))
	case c.Kind == ClauseDefault && c.Numeric:
		return fmt.Sprintf("->default(%s)", c.Value)
	case c.Kind == ClauseDefault:
		return fmt.Sprintf("->default(%s)", QuoteLiteral(c.Value))
	default:
		return fmt.Sprintf("->%s()", c.Kind.Method())
	}
}

// FieldDeclaration is the ordered clause sequence derived from one column.
type FieldDeclaration struct {
	Column  string
	Clauses []Clause
}

// FieldIndent prefixes every rendered declaration inside the stub's up() body.
const FieldIndent = "            "

// Kinds returns the clause kinds in order.
func (d FieldDeclaration) Kinds() []ClauseKind {
	kinds := make([]ClauseKind, len(d.Clauses))
	for i, c := range d.Clauses {
		kinds[i] = c.Kind
	}
	return kinds
}

// Render renders the declaration as a single terminated statement line.
func (d FieldDeclaration) Render() string {
	var b strings.Builder
	b.WriteString(FieldIndent)
	b.WriteString("$table")
	for _, c := range d.Clauses {
		b.WriteString(c.Render())
	}
	b.WriteString(";\n")
	return b.String()
}

// RenderBlock renders declarations in order, one per line.
func RenderBlock(fields []FieldDeclaration) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.Render())
	}
	return b.String()
}

// QuoteLiteral renders s as a single-quoted literal.
func QuoteLiteral(s string) string {
	return "'" + literalEscaper.Replace(s) + "'"
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
