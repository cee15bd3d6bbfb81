package schema

import (
	"fmt"

	atlas "ariga.io/atlas/sql/schema"
	"github.com/go-openapi/inflect"

	"github.com/syssam/sqlmaker"
)

// FromAtlas converts an atlas table into a checked descriptor. The entity
// name is the table name, and every column is reachable through the
// camel-cased field name (first_name -> FirstName).
func FromAtlas(t *atlas.Table) (*Descriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil atlas table", sqlmaker.ErrInvalidArgument)
	}
	var (
		columns = make([]string, 0, len(t.Columns))
		fields  = make(map[string]string, len(t.Columns))
	)
	for _, c := range t.Columns {
		columns = append(columns, c.Name)
		fields[inflect.Camelize(c.Name)] = c.Name
	}
	return NewDescriptor(t.Name, t.Name, columns, fields)
}

// RegisterAtlas registers every table of an atlas schema. It fails without
// registering anything if a table cannot be converted or its name is taken.
func (r *Registry) RegisterAtlas(s *atlas.Schema) error {
	if s == nil {
		return fmt.Errorf("%w: nil atlas schema", sqlmaker.ErrInvalidArgument)
	}
	ds := make([]*Descriptor, 0, len(s.Tables))
	for i, t := range s.Tables {
		d, err := FromAtlas(t)
		if err != nil {
			return fmt.Errorf("schema: atlas table #%d: %w", i+1, err)
		}
		ds = append(ds, d)
	}
	return r.Register(ds...)
}
