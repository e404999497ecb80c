package introspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestUnquoteDefault(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{"NULL", nil},
		{"null", nil},
		{"'abc'", ptr("abc")},
		{"'it''s'", ptr("it's")},
		{"''", ptr("")},
		{"0", ptr("0")},
		{"current_timestamp()", ptr("current_timestamp()")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, unquoteDefault(tt.in))
		})
	}
}

func TestQuotesDefaults(t *testing.T) {
	assert.False(t, QuotesDefaults("8.0.36"))
	assert.False(t, QuotesDefaults("5.7.44-log"))
	assert.False(t, QuotesDefaults("10.1.48-MariaDB"))
	assert.False(t, QuotesDefaults("10.2.6-MariaDB"))
	assert.True(t, QuotesDefaults("10.2.7-MariaDB"))
	assert.True(t, QuotesDefaults("10.11.6-MariaDB-1:10.11.6+maria~ubu2204"))
	assert.True(t, QuotesDefaults("5.5.5-10.6.16-MariaDB"))
}

func TestPostgresDefault(t *testing.T) {
	value, serial := postgresDefault("nextval('users_id_seq'::regclass)")
	assert.True(t, serial)
	assert.Nil(t, value)

	value, serial = postgresDefault("'draft'::character varying")
	assert.False(t, serial)
	require.NotNil(t, value)
	assert.Equal(t, "draft", *value)

	value, _ = postgresDefault("NULL::character varying")
	assert.Nil(t, value)

	value, _ = postgresDefault("(-1)")
	require.NotNil(t, value)
	assert.Equal(t, "-1", *value)

	value, _ = postgresDefault("'2020-01-01 00:00:00'::timestamp without time zone")
	require.NotNil(t, value)
	assert.Equal(t, "2020-01-01 00:00:00", *value)
}

func TestPostgresType(t *testing.T) {
	n := int64(255)
	assert.Equal(t, "varchar(255)", postgresType("character varying", &n))
	assert.Equal(t, "varchar", postgresType("character varying", nil))
	assert.Equal(t, "double", postgresType("double precision", nil))
	assert.Equal(t, "tinyint(1)", postgresType("boolean", nil))
	assert.Equal(t, "int", postgresType("integer", nil))
	assert.Equal(t, "bigint", postgresType("bigint", nil))
	assert.Equal(t, "timestamp", postgresType("timestamp with time zone", nil))
	assert.Equal(t, "text", postgresType("text", nil))
}

func TestSQLServerNormalization(t *testing.T) {
	n := int64(100)
	max := int64(-1)
	assert.Equal(t, "varchar(100)", sqlserverType("nvarchar", &n))
	assert.Equal(t, "text", sqlserverType("nvarchar", &max))
	assert.Equal(t, "double", sqlserverType("float", nil))
	assert.Equal(t, "tinyint(1)", sqlserverType("bit", nil))
	assert.Equal(t, "datetime", sqlserverType("datetime2", nil))
	assert.Equal(t, "bigint", sqlserverType("BIGINT", nil))

	assert.Equal(t, ptr("0"), sqlserverDefault("((0))"))
	assert.Equal(t, ptr("abc"), sqlserverDefault("('abc')"))
	assert.Equal(t, ptr("abc"), sqlserverDefault("(N'abc')"))
	assert.Equal(t, ptr("getdate()"), sqlserverDefault("(getdate())"))
	assert.Nil(t, sqlserverDefault("(NULL)"))
}

func TestStripParens(t *testing.T) {
	assert.Equal(t, "0", stripParens("((0))"))
	assert.Equal(t, "(a)+(b)", stripParens("(a)+(b)"))
	assert.Equal(t, "')('", stripParens("(')(')"))
}
