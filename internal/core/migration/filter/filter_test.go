package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

func TestClassify(t *testing.T) {
	exclusions := domain.NewExclusionSet("migrations", "users")

	tests := []struct {
		table    string
		prefix   string
		expected Reason
	}{
		{"posts", "", Eligible},
		{"users", "", Excluded},
		{"migrations", "", Excluded},
		{"users", "us", Excluded},
		{"wp_posts", "wp_", Eligible},
		{"posts", "wp_", PrefixMismatch},
		{"WP_posts", "wp_", PrefixMismatch},
		{"wp", "wp_", PrefixMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.table+"/"+tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.table, exclusions, tt.prefix))
			assert.Equal(t, tt.expected == Eligible, IsEligible(tt.table, exclusions, tt.prefix))
		})
	}
}
