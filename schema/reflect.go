package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/sqlmaker"
)

// TableNamer is implemented by entity types that choose their own table
// name instead of the derived one.
type TableNamer interface {
	TableName() string
}

// tagName is the struct tag read for column names.
const tagName = "db"

var tableNamerType = reflect.TypeOf((*TableNamer)(nil)).Elem()

// Inspect builds a descriptor from a struct type by reflection.
// Pointer types are dereferenced.
func Inspect(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil entity type", sqlmaker.ErrInvalidArgument)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, sqlmaker.NewEntityError(t.String(), fmt.Errorf("%w: expect struct, got %s", sqlmaker.ErrInvalidArgument, t.Kind()))
	}
	var (
		columns []string
		fields  = make(map[string]string)
	)
	if err := collect(t, &columns, fields, map[reflect.Type]bool{}); err != nil {
		return nil, sqlmaker.NewEntityError(t.String(), err)
	}
	d, err := NewDescriptor(t.Name(), tableName(t), columns, fields)
	if err != nil {
		return nil, sqlmaker.NewEntityError(t.String(), err)
	}
	return d, nil
}

// tableName returns the table of t, preferring a TableNamer implementation
// on either the value or the pointer receiver.
func tableName(t reflect.Type) string {
	switch {
	case t.Implements(tableNamerType):
		return reflect.Zero(t).Interface().(TableNamer).TableName()
	case reflect.PointerTo(t).Implements(tableNamerType):
		return reflect.New(t).Interface().(TableNamer).TableName()
	}
	return inflect.Pluralize(inflect.Underscore(t.Name()))
}

// collect appends the columns of t, flattening embedded structs.
func collect(t reflect.Type, columns *[]string, fields map[string]string, seen map[reflect.Type]bool) error {
	if seen[t] {
		return fmt.Errorf("%w: recursive embedding of %s", sqlmaker.ErrInvalidArgument, t)
	}
	seen[t] = true
	defer delete(seen, t)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, hasTag := f.Tag.Lookup(tagName)
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if f.Anonymous && !hasTag {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if err := collect(ft, columns, fields, seen); err != nil {
					return err
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = inflect.Underscore(f.Name)
		}
		if _, dup := fields[f.Name]; dup {
			return fmt.Errorf("%w: field %s is declared twice", sqlmaker.ErrInvalidArgument, f.Name)
		}
		*columns = append(*columns, name)
		fields[f.Name] = name
	}
	return nil
}
