package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileDoc is the on-disk policy document shape.
type fileDoc struct {
	Roles Table `yaml:"roles"`
}

// Parse decodes a YAML policy document into a table.
func Parse(data []byte) (Table, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse policy document: %w", err)
	}
	if len(doc.Roles) == 0 {
		return nil, fmt.Errorf("policy document defines no roles")
	}
	return doc.Roles, nil
}

// LoadFile reads and parses a YAML policy file.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return Parse(data)
}

// LoadFile replaces the store's table with the file's contents. On any
// error the current table is kept unchanged, so a bad edit can never swap
// in a partial policy.
func (s *Store) LoadFile(path string) error {
	table, err := LoadFile(path)
	if err != nil {
		return err
	}
	s.Replace(table)
	return nil
}
