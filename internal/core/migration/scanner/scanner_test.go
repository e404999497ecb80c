package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
)

const usersMigration = `<?php

use Illuminate\Database\Migrations\Migration;
use Illuminate\Database\Schema\Blueprint;
use Illuminate\Support\Facades\Schema;

class CreateUsersTable extends Migration
{
    public function up()
    {
        Schema::create('users', function (Blueprint $table) {
            $table->bigIncrements('id');
        });

        Schema::create('password_resets', function (Blueprint $table) {
            $table->string('email');
        });
    }
}
`

const alterMigration = `<?php

class AddVotesToUsers extends Migration
{
    public function up()
    {
        Schema::table('users', function (Blueprint $table) {
            $table->integer('votes');
        });
    }
}
`

func TestExtractTable(t *testing.T) {
	tests := []struct {
		name   string
		source string
		table  string
		found  bool
	}{
		{"first creation wins", usersMigration, "users", true},
		{"no marker", alterMigration, "", false},
		{"double quotes", `Schema::create("orders", function ($t) {`, "orders", true},
		{"literal before marker ignored", `$x = 'nope'; Schema::create('posts', fn);`, "posts", true},
		{"escaped quote", `Schema::create('it\'s', fn);`, "it's", true},
		{"marker without literal keeps scanning", "Schema::create($name, fn);\nSchema::create('tags', fn);", "tags", true},
		{"unterminated literal", `Schema::create('broken`, "", false},
		{"empty source", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, found := ExtractTable(tt.source)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.table, table)
		})
	}
}

func TestBuildExclusions(t *testing.T) {
	sources := []domain.MigrationSource{
		{ID: "2014_10_12_000000_create_users_table", Text: usersMigration},
		{ID: "2019_01_01_000000_add_votes_to_users", Text: alterMigration},
	}

	exclusions := BuildExclusions(sources, "migrations")

	assert.Equal(t, []string{"migrations", "users"}, exclusions.Tables())
	assert.Equal(t, "2014_10_12_000000_create_users_table", exclusions.Source("users"))
	assert.False(t, exclusions.Contains("password_resets"))
}

func TestBuildExclusions_HistoryTableOnly(t *testing.T) {
	exclusions := BuildExclusions(nil, "migrations")
	assert.Equal(t, []string{"migrations"}, exclusions.Tables())
}

func TestManifest_RoundTripAndMerge(t *testing.T) {
	m, err := ParseManifest([]byte("migrations:\n  orders: 2020_01_01_000000_create_orders_table\n"))
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, m.Version)

	m.Record("invoices", "2021_01_01_000000_create_invoices_table")
	data, err := m.Encode()
	require.NoError(t, err)

	decoded, err := ParseManifest(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"invoices", "orders"}, decoded.Tables())

	exclusions := domain.NewExclusionSet("migrations")
	exclusions.Add("orders", "2019_scanned")
	MergeManifest(exclusions, decoded)

	assert.Equal(t, []string{"invoices", "migrations", "orders"}, exclusions.Tables())
	assert.Equal(t, "2019_scanned", exclusions.Source("orders"))
	assert.Equal(t, "2021_01_01_000000_create_invoices_table", exclusions.Source("invoices"))
}

func TestParseManifest_Empty(t *testing.T) {
	m, err := ParseManifest(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Tables())
}

func TestParseManifest_Invalid(t *testing.T) {
	_, err := ParseManifest([]byte("migrations: [unclosed"))
	assert.Error(t, err)
}
