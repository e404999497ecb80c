// Package filter decides which live tables should receive a new migration.
package filter

import (
	"strings"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

// Reason explains a filter decision.
type Reason string

const (
	// Eligible means a migration should be generated.
	Eligible Reason = "eligible"
	// Excluded means an existing migration already covers the table.
	Excluded Reason = "excluded"
	// PrefixMismatch means the table does not start with the configured prefix.
	PrefixMismatch Reason = "prefix"
)

// Classify returns why a table is or is not eligible. Exclusion is checked
// before the prefix. The prefix match is exact and case-sensitive; an empty
// prefix disables it.
func Classify(table string, exclusions domain.ExclusionSet, prefix string) Reason {
	if exclusions.Contains(table) {
		return Excluded
	}
	if prefix != "" && !strings.HasPrefix(table, prefix) {
		return PrefixMismatch
	}
	return Eligible
}

// IsEligible reports whether a table should receive a new migration.
func IsEligible(table string, exclusions domain.ExclusionSet, prefix string) bool {
	return Classify(table, exclusions, prefix) == Eligible
}
