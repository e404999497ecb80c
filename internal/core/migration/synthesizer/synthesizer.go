// Package synthesizer renders migration files from field declarations.
package synthesizer

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
	"github.com/satishbabariya/migconvert/internal/debug"
)

// Stub placeholders.
const (
	PlaceholderClass  = "DummyClass"
	PlaceholderTable  = "DummyTable"
	PlaceholderFields = "[database_fields]"
)

// Extension is appended to every generated migration identifier.
const Extension = ".php"

//go:embed stubs/create.stub
var defaultStub string

// DefaultStub returns the built-in create-table stub.
func DefaultStub() string {
	return defaultStub
}

// ValidateStub checks that a stub carries every placeholder.
func ValidateStub(stub string) error {
	for _, p := range []string{PlaceholderClass, PlaceholderTable, PlaceholderFields} {
		if !strings.Contains(stub, p) {
			return fmt.Errorf("%w: missing placeholder %s", domain.ErrInvalidStub, p)
		}
	}
	return nil
}

// Writer persists generated files.
type Writer interface {
	Write(ctx context.Context, path string, content []byte) error
}

// Synthesizer writes one migration file per table.
type Synthesizer struct {
	writer Writer
	stub   string
	namer  *Namer
}

// New creates a synthesizer. An empty stub selects the built-in one.
func New(writer Writer, stub string, namer *Namer) (*Synthesizer, error) {
	if stub == "" {
		stub = defaultStub
	}
	if err := ValidateStub(stub); err != nil {
		return nil, err
	}
	if namer == nil {
		namer = NewNamer(nil)
	}
	return &Synthesizer{
		writer: writer,
		stub:   stub,
		namer:  namer,
	}, nil
}

// Namer returns the namer issuing identifier prefixes.
func (s *Synthesizer) Namer() *Namer {
	return s.namer
}

// Synthesize renders the migration for a table and writes it under destination.
func (s *Synthesizer) Synthesize(ctx context.Context, table string, fields []domain.FieldDeclaration, destination string) (*domain.MigrationFile, error) {
	id := s.namer.Next() + "_create_" + table + "_table"
	className := ClassName(table)
	path := filepath.Join(destination, id+Extension)

	body := Populate(s.stub, className, table, domain.RenderBlock(fields))

	if err := s.writer.Write(ctx, path, []byte(body)); err != nil {
		return nil, domain.NewFileWriteError(path, err)
	}

	debug.Debug("Wrote migration", "table", table, "path", path, "fields", len(fields))

	return &domain.MigrationFile{
		ID:        id,
		Table:     table,
		ClassName: className,
		Body:      body,
		Path:      path,
	}, nil
}

// Populate substitutes every placeholder in a single pass, so replacement
// values are never rescanned for other placeholders.
func Populate(stub, className, table, fields string) string {
	r := strings.NewReplacer(
		PlaceholderClass, className,
		PlaceholderTable, table,
		PlaceholderFields, fields,
	)
	return r.Replace(stub)
}

// ClassName returns the studly-cased class name of a table's create migration.
// Only the first rune of a word is upper-cased. Runes that cannot appear in a
// PHP identifier separate words, so the result is always a valid class name.
func ClassName(table string) string {
	upper := cases.Upper(language.Und)
	words := strings.FieldsFunc("create_"+table+"_table", func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, w := range words {
		_, size := utf8.DecodeRuneInString(w)
		b.WriteString(upper.String(w[:size]))
		b.WriteString(w[size:])
	}
	return b.String()
}
