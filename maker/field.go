package maker

// Field is a typed column reference that provides type-safe predicate
// methods.
//
// Usage:
//
//	var Age = maker.Field[int]("age")
//	b.Where(Age.GTE(18))
type Field[T any] string

// Name returns the column name.
func (f Field[T]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f Field[T]) EQ(v T) *Predicate { return EQ(string(f), v) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f Field[T]) NEQ(v T) *Predicate { return NEQ(string(f), v) }

// GT returns a predicate that checks if the field is greater than the given value.
func (f Field[T]) GT(v T) *Predicate { return GT(string(f), v) }

// GTE returns a predicate that checks if the field is greater than or equal to the given value.
func (f Field[T]) GTE(v T) *Predicate { return GTE(string(f), v) }

// LT returns a predicate that checks if the field is less than the given value.
func (f Field[T]) LT(v T) *Predicate { return LT(string(f), v) }

// LTE returns a predicate that checks if the field is less than or equal to the given value.
func (f Field[T]) LTE(v T) *Predicate { return LTE(string(f), v) }

// In returns a predicate that checks if the field value is in the given list.
func (f Field[T]) In(vs ...T) *Predicate { return In(string(f), anys(vs)...) }

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f Field[T]) NotIn(vs ...T) *Predicate { return NotIn(string(f), anys(vs)...) }

// IsNull returns a predicate that checks if the field is NULL.
func (f Field[T]) IsNull() *Predicate { return IsNull(string(f)) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f Field[T]) NotNull() *Predicate { return NotNull(string(f)) }

// StringField is a string column reference with pattern predicates.
type StringField struct{ Field[string] }

// String returns a StringField for the given column.
func String(column string) StringField { return StringField{Field[string](column)} }

// Contains returns a predicate that checks if the field contains the given substring.
func (f StringField) Contains(v string) *Predicate { return Contains(f.Name(), v) }

// HasPrefix returns a predicate that checks if the field has the given prefix.
func (f StringField) HasPrefix(v string) *Predicate { return HasPrefix(f.Name(), v) }

// HasSuffix returns a predicate that checks if the field has the given suffix.
func (f StringField) HasSuffix(v string) *Predicate { return HasSuffix(f.Name(), v) }

func anys[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i := range vs {
		out[i] = vs[i]
	}
	return out
}
