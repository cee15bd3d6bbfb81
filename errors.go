package sqlmaker

import (
	"errors"
	"fmt"
)

// Standard sentinel errors shared by the schema and maker packages.
var (
	// ErrInvalidArgument is returned when an operation receives a nil or
	// malformed input, such as a nil entity or an empty table name.
	ErrInvalidArgument = errors.New("sqlmaker: invalid argument")

	// ErrIllegalState is returned when an operation is attempted in a state
	// that does not allow it, such as reading a table name before binding.
	ErrIllegalState = errors.New("sqlmaker: illegal state")

	// ErrUnsupportedOperation is returned when a statement references a
	// column that does not belong to the bound table, or when a statement
	// shape cannot express the requested operation.
	ErrUnsupportedOperation = errors.New("sqlmaker: unsupported operation")

	// ErrNotFound is returned when a resolver has no schema for an entity.
	ErrNotFound = errors.New("sqlmaker: entity not found")
)

// ErrNoEntity is the illegal-state error recorded when an operation requires
// a bound entity and none was bound.
var ErrNoEntity = fmt.Errorf("%w: no entity specified", ErrIllegalState)

// ColumnError reports a column reference that is not part of a table.
type ColumnError struct {
	Table  string
	Column string
}

// Error returns the error string.
func (e *ColumnError) Error() string {
	return fmt.Sprintf("sqlmaker: column %q does not exist in table %q", e.Column, e.Table)
}

// Is reports whether the target error matches ColumnError.
// This allows errors.Is(columnErr, ErrUnsupportedOperation) to return true.
func (e *ColumnError) Is(err error) bool {
	return err == ErrUnsupportedOperation
}

// NewColumnError returns a new ColumnError.
func NewColumnError(table, column string) *ColumnError {
	return &ColumnError{Table: table, Column: column}
}

// IsColumnError returns true if the error is a ColumnError.
func IsColumnError(err error) bool {
	if err == nil {
		return false
	}
	var e *ColumnError
	return errors.As(err, &e)
}

// EntityError wraps a resolution failure with the entity that caused it.
type EntityError struct {
	Entity string // Entity name or Go type
	Err    error  // Underlying error
}

// Error returns the error string.
func (e *EntityError) Error() string {
	return fmt.Sprintf("sqlmaker: entity %s: %v", e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *EntityError) Unwrap() error {
	return e.Err
}

// NewEntityError returns a new EntityError.
func NewEntityError(entity string, err error) *EntityError {
	return &EntityError{Entity: entity, Err: err}
}

// IsInvalidArgument returns true if the error is, or wraps, ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return err != nil && errors.Is(err, ErrInvalidArgument)
}

// IsIllegalState returns true if the error is, or wraps, ErrIllegalState.
func IsIllegalState(err error) bool {
	return err != nil && errors.Is(err, ErrIllegalState)
}

// IsUnsupportedOperation returns true if the error is, or wraps,
// ErrUnsupportedOperation. ColumnError values match as well.
func IsUnsupportedOperation(err error) bool {
	return err != nil && errors.Is(err, ErrUnsupportedOperation)
}

// IsNotFound returns true if the error is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

// AggregateError represents multiple errors collected while building a
// statement.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "sqlmaker: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "sqlmaker: multiple errors:"
	for i, err := range e.Errors {
		msg += fmt.Sprintf("\n  [%d] %v", i+1, err)
	}
	return msg
}

// Unwrap returns the collected errors so errors.Is and errors.As inspect
// each of them.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil. A single error is returned unwrapped.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
