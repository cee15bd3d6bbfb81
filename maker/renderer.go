package maker

import (
	"fmt"

	"github.com/syssam/sqlmaker"
)

// Renderer produces the shape-specific parts of a statement. The Builder
// stops calling a method once it has returned successfully.
type Renderer interface {
	// RenderText returns the complete statement text. It may call
	// WhereClause, CheckColumn, LookupColumn and C on the builder.
	RenderText(b *Builder) (string, error)

	// RenderBaseParameters returns the statement's own positional values,
	// such as inserted or updated column values. Predicate values are
	// appended by the builder and must not be included.
	RenderBaseParameters(b *Builder) ([]any, error)
}

// RendererFuncs is an adapter to allow the use of ordinary functions as a
// Renderer. A nil Params func renders no base parameters.
type RendererFuncs struct {
	Text   func(*Builder) (string, error)
	Params func(*Builder) ([]any, error)
}

// RenderText calls r.Text(b).
func (r RendererFuncs) RenderText(b *Builder) (string, error) {
	if r.Text == nil {
		return "", fmt.Errorf("%w: no text renderer", sqlmaker.ErrIllegalState)
	}
	return r.Text(b)
}

// RenderBaseParameters calls r.Params(b).
func (r RendererFuncs) RenderBaseParameters(b *Builder) ([]any, error) {
	if r.Params == nil {
		return nil, nil
	}
	return r.Params(b)
}

var _ Renderer = RendererFuncs{}
