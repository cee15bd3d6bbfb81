package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/sqlmaker"
)

// File is the YAML document read by Load.
type File struct {
	Entities []EntityConfig `yaml:"entities"`
}

// EntityConfig describes one entity in a schema file.
type EntityConfig struct {
	Name      string            `yaml:"name"`
	Table     string            `yaml:"table"`
	Unchecked bool              `yaml:"unchecked,omitempty"`
	Columns   []string          `yaml:"columns,omitempty"`
	Fields    map[string]string `yaml:"fields,omitempty"`
}

// Descriptor converts the entry into a Descriptor.
func (c EntityConfig) Descriptor() (*Descriptor, error) {
	if c.Table == "" {
		return nil, fmt.Errorf("%w: entity %q has no table", sqlmaker.ErrInvalidArgument, c.Name)
	}
	if c.Unchecked {
		if len(c.Columns) > 0 || len(c.Fields) > 0 {
			return nil, fmt.Errorf("%w: unchecked entity %q must not declare columns or fields", sqlmaker.ErrInvalidArgument, c.Name)
		}
		return Unchecked(c.Name, c.Table), nil
	}
	return NewDescriptor(c.Name, c.Table, c.Columns, c.Fields)
}

// Parse decodes a schema file into descriptors, in file order.
// Entity names must be unique within the file.
func Parse(r io.Reader) ([]*Descriptor, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("schema: decode file: %w", err)
	}
	var (
		ds   = make([]*Descriptor, 0, len(f.Entities))
		seen = make(map[string]bool, len(f.Entities))
	)
	for i, e := range f.Entities {
		d, err := e.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("schema: entity #%d: %w", i+1, err)
		}
		if seen[d.Entity()] {
			return nil, fmt.Errorf("schema: entity #%d: %w: duplicate name %q", i+1, sqlmaker.ErrInvalidArgument, d.Entity())
		}
		seen[d.Entity()] = true
		ds = append(ds, d)
	}
	return ds, nil
}

// Load parses a schema file and registers its descriptors, replacing any
// descriptor registered under the same name. Nothing is registered if the
// file is invalid.
func (r *Registry) Load(rd io.Reader) error {
	ds, err := Parse(rd)
	if err != nil {
		return err
	}
	return r.replace(ds)
}

// LoadFile is like Load, reading from the named file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("schema: read file: %w", err)
	}
	return r.Load(bytes.NewReader(data))
}
