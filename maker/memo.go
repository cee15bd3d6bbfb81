package maker

// cell is a write-once memoization slot. It is either empty or holds the
// value computed by the first successful get; once filled it never changes.
type cell[T any] struct {
	value *T
}

// get returns the cached value, computing it with fn on first use. A failed
// computation leaves the cell empty.
func (c *cell[T]) get(fn func() (T, error)) (T, error) {
	if c.value != nil {
		return *c.value, nil
	}
	v, err := fn()
	if err != nil {
		var zero T
		return zero, err
	}
	c.value = &v
	return v, nil
}

// filled reports whether the cell holds a value.
func (c *cell[T]) filled() bool { return c.value != nil }
