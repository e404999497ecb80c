// Package scanner detects which tables existing migration sources already create.
//
// Detection is textual: sources are never executed. The first line holding
// the creation marker decides the table a source covers, and a source that
// creates several tables only contributes the first one.
package scanner

import (
	"strings"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
	"github.com/satishbabariya/migconvert/internal/debug"
)

// CreateMarker is the token that opens a table creation statement.
const CreateMarker = "Schema::create"

// ExtractTable returns the table created by a migration source.
func ExtractTable(source string) (string, bool) {
	for _, line := range strings.Split(source, "\n") {
		idx := strings.Index(line, CreateMarker)
		if idx < 0 {
			continue
		}
		if table, ok := firstLiteral(line[idx+len(CreateMarker):]); ok {
			return table, true
		}
	}
	return "", false
}

// BuildExclusions scans every source and returns the covered tables. The
// history table is always excluded.
func BuildExclusions(sources []domain.MigrationSource, historyTable string) domain.ExclusionSet {
	exclusions := domain.NewExclusionSet(historyTable)

	for _, src := range sources {
		table, ok := ExtractTable(src.Text)
		if !ok {
			debug.Debug("No table creation found in migration", "migration", src.ID)
			continue
		}
		debug.Debug("Migration covers table", "migration", src.ID, "table", table)
		exclusions.Add(table, src.ID)
	}

	return exclusions
}

// MergeManifest adds every manifest entry to the exclusion set.
func MergeManifest(exclusions domain.ExclusionSet, manifest *Manifest) {
	if manifest == nil {
		return
	}
	for _, table := range manifest.Tables() {
		exclusions.Add(table, manifest.Migrations[table])
	}
}
