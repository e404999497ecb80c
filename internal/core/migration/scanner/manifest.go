package scanner

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest is an explicit registry mapping tables to the migration that creates them.
// It sits beside the textual scan and takes no part in it.
type Manifest struct {
	Version    int               `yaml:"version"`
	Migrations map[string]string `yaml:"migrations"`
}

// ManifestVersion is the current manifest format version.
const ManifestVersion = 1

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		Version:    ManifestVersion,
		Migrations: map[string]string{},
	}
}

// ParseManifest decodes a manifest document. Empty input yields an empty manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	m := NewManifest()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	if m.Migrations == nil {
		m.Migrations = map[string]string{}
	}
	if m.Version == 0 {
		m.Version = ManifestVersion
	}
	return m, nil
}

// Record registers the migration that creates a table.
func (m *Manifest) Record(table, migration string) {
	m.Migrations[table] = migration
}

// Tables returns the registered tables in sorted order.
func (m *Manifest) Tables() []string {
	tables := make([]string, 0, len(m.Migrations))
	for t := range m.Migrations {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

// Encode serializes the manifest.
func (m *Manifest) Encode() ([]byte, error) {
	return yaml.Marshal(m)
}
