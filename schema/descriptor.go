package schema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/syssam/sqlmaker"
)

// Descriptor describes how one entity is stored: its table, its valid
// columns and the field-to-column dictionary. A Descriptor never changes
// after construction; every accessor returns copies.
type Descriptor struct {
	entity    string
	table     string
	columns   []string
	columnSet map[string]struct{}
	fields    map[string]string
	checked   bool
}

// NewDescriptor returns a checked descriptor. Column references against a
// checked descriptor are validated by statement builders.
//
// Every value of fields must be one of columns. A nil fields map is allowed;
// the dictionary is not required to be total.
func NewDescriptor(entity, table string, columns []string, fields map[string]string) (*Descriptor, error) {
	if table == "" {
		return nil, fmt.Errorf("%w: empty table name for entity %q", sqlmaker.ErrInvalidArgument, entity)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: table %q has no columns", sqlmaker.ErrInvalidArgument, table)
	}
	d := &Descriptor{
		entity:    entity,
		table:     table,
		columns:   slices.Clone(columns),
		columnSet: make(map[string]struct{}, len(columns)),
		fields:    make(map[string]string, len(fields)),
		checked:   true,
	}
	if d.entity == "" {
		d.entity = table
	}
	for _, c := range columns {
		if c == "" {
			return nil, fmt.Errorf("%w: table %q has an empty column name", sqlmaker.ErrInvalidArgument, table)
		}
		if _, ok := d.columnSet[c]; ok {
			return nil, fmt.Errorf("%w: table %q declares column %q twice", sqlmaker.ErrInvalidArgument, table, c)
		}
		d.columnSet[c] = struct{}{}
	}
	for f, c := range fields {
		if _, ok := d.columnSet[c]; !ok {
			return nil, fmt.Errorf("%w: field %q maps to unknown column %q of table %q", sqlmaker.ErrInvalidArgument, f, c, table)
		}
		d.fields[f] = c
	}
	return d, nil
}

// Unchecked returns a descriptor for a table without a known column set.
// Column validation against it always succeeds.
func Unchecked(entity, table string) *Descriptor {
	if entity == "" {
		entity = table
	}
	return &Descriptor{
		entity:    entity,
		table:     table,
		columnSet: map[string]struct{}{},
		fields:    map[string]string{},
	}
}

// Entity returns the entity name the descriptor was registered under.
func (d *Descriptor) Entity() string { return d.entity }

// Table returns the table name.
func (d *Descriptor) Table() string { return d.table }

// Checked reports whether column references are validated against the
// column set.
func (d *Descriptor) Checked() bool { return d.checked }

// Columns returns the column names in declaration order.
func (d *Descriptor) Columns() []string { return slices.Clone(d.columns) }

// HasColumn reports whether column belongs to the table.
func (d *Descriptor) HasColumn(column string) bool {
	_, ok := d.columnSet[column]
	return ok
}

// Column returns the column mapped to the given field name.
func (d *Descriptor) Column(field string) (string, bool) {
	c, ok := d.fields[field]
	return c, ok
}

// Fields returns a copy of the field-to-column dictionary.
func (d *Descriptor) Fields() map[string]string { return maps.Clone(d.fields) }

// String implements fmt.Stringer.
func (d *Descriptor) String() string {
	if !d.checked {
		return fmt.Sprintf("%s(%s, unchecked)", d.entity, d.table)
	}
	return fmt.Sprintf("%s(%s, %d columns)", d.entity, d.table, len(d.columns))
}
