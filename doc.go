// Package sqlmaker holds the errors shared by the schema and maker packages.
//
// Package schema describes how entities map to tables. Package maker builds
// parameterized statements against those descriptions:
//
//	b := maker.New(maker.Select()).Bind(User{}).Where(maker.EQ("id", 1))
//	query, args, err := b.Query()
//
// Errors raised by resolution and statement building match one of
// ErrInvalidArgument, ErrIllegalState, ErrUnsupportedOperation or ErrNotFound
// with errors.Is. I/O and YAML decoding errors from schema files are wrapped
// as they are.
package sqlmaker
