package maker

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/syssam/sqlmaker"
	"github.com/syssam/sqlmaker/schema"
)

// Builder assembles one parameterized statement for one entity.
//
// A Builder is bound to an entity, collects predicates, and renders its
// statement text and parameters through a Renderer. Each output is frozen on
// first successful read: later calls return the cached value, even if more
// predicates were added in between. Compose all predicates before reading.
//
// Errors are accumulated and reported by Err, Text and Parameters, so calls
// can be chained. A Builder is not safe for concurrent use.
type Builder struct {
	renderer Renderer
	resolver schema.Resolver
	logger   *slog.Logger

	entity     any
	desc       *schema.Descriptor
	predicates []*Predicate
	// args holds the values of all predicates, in accumulation order.
	args []any
	errs []error

	text   cell[string]
	params cell[[]any]
}

// Option configures a Builder.
type Option func(*Builder)

// WithResolver sets the resolver used by Bind. The default is schema.Default.
func WithResolver(r schema.Resolver) Option {
	return func(b *Builder) {
		if r != nil {
			b.resolver = r
		}
	}
}

// WithLogger sets the logger for debug events. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// New returns a Builder that renders its statement with r.
func New(r Renderer, opts ...Option) *Builder {
	b := &Builder{
		renderer: r,
		resolver: schema.Default,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if r == nil {
		b.AddError(fmt.Errorf("%w: nil renderer", sqlmaker.ErrInvalidArgument))
	}
	return b
}

// Bind resolves the entity's schema and binds the builder to it.
//
// Binding a nil or unresolvable entity records an invalid-argument error.
// Rebinding is allowed until a predicate is added or an output is read;
// after that it records an illegal-state error and keeps the first binding.
func (b *Builder) Bind(entity any) *Builder {
	if entity == nil {
		return b.AddError(fmt.Errorf("%w: nil entity", sqlmaker.ErrInvalidArgument))
	}
	if len(b.predicates) > 0 || b.text.filled() || b.params.filled() {
		return b.AddError(fmt.Errorf("%w: cannot rebind a builder in use (bound to %q)", sqlmaker.ErrIllegalState, b.desc.Table()))
	}
	d, err := b.resolver.Resolve(entity)
	if err != nil {
		if !sqlmaker.IsInvalidArgument(err) {
			err = fmt.Errorf("%w: %w", sqlmaker.ErrInvalidArgument, err)
		}
		return b.AddError(err)
	}
	if d == nil {
		return b.AddError(fmt.Errorf("%w: no schema for entity %T", sqlmaker.ErrInvalidArgument, entity))
	}
	b.entity, b.desc = entity, d
	return b
}

// AddError records an error on the builder.
func (b *Builder) AddError(err error) *Builder {
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Err returns the errors recorded so far, or nil.
func (b *Builder) Err() error {
	return sqlmaker.NewAggregateError(b.errs...)
}

// Entity returns the bound entity token, or nil.
func (b *Builder) Entity() any { return b.entity }

// Descriptor returns the bound schema descriptor, or nil.
func (b *Builder) Descriptor() *schema.Descriptor { return b.desc }

// TableName returns the bound table name.
func (b *Builder) TableName() (string, error) {
	if b.desc == nil {
		return "", sqlmaker.ErrNoEntity
	}
	return b.desc.Table(), nil
}

// CheckColumn returns nil if column belongs to the bound table. It returns a
// *sqlmaker.ColumnError naming the column and the table otherwise. Against
// an unchecked descriptor every column is accepted.
//
// CheckColumn must guard every column reference embedded in statement text.
func (b *Builder) CheckColumn(column string) error {
	if b.desc == nil {
		return sqlmaker.ErrNoEntity
	}
	if !b.desc.Checked() || b.desc.HasColumn(column) {
		return nil
	}
	return sqlmaker.NewColumnError(b.desc.Table(), column)
}

// LookupColumn returns the column mapped to a field name. The boolean is
// false when the dictionary has no entry for the field.
func (b *Builder) LookupColumn(field string) (string, bool, error) {
	if b.desc == nil {
		return "", false, sqlmaker.ErrNoEntity
	}
	c, ok := b.desc.Column(field)
	return c, ok, nil
}

// C returns the validated column for a column or field name. Column names
// win over field names. An unknown name is returned unchanged and an error
// is recorded on the builder.
func (b *Builder) C(name string) string {
	if b.desc == nil {
		b.AddError(sqlmaker.ErrNoEntity)
		return name
	}
	if b.desc.HasColumn(name) {
		return name
	}
	if c, ok := b.desc.Column(name); ok {
		return c
	}
	b.AddError(b.CheckColumn(name))
	return name
}

// Where appends predicates to the WHERE clause, in order.
func (b *Builder) Where(ps ...*Predicate) *Builder {
	return b.WhereAll(ps)
}

// WhereAll appends a list of predicates to the WHERE clause, in order.
// Values of predicates that carry any are appended to the parameter list.
// The predicate list is unbounded; predicates are never reordered or
// deduplicated.
func (b *Builder) WhereAll(ps []*Predicate) *Builder {
	if b.desc == nil {
		return b.AddError(fmt.Errorf("where: %w", sqlmaker.ErrNoEntity))
	}
	for i, p := range ps {
		if p == nil {
			b.AddError(fmt.Errorf("%w: nil predicate at position %d", sqlmaker.ErrInvalidArgument, i))
			continue
		}
		b.predicates = append(b.predicates, p)
		if p.HasValue() {
			b.args = append(b.args, p.args...)
		}
	}
	return b
}

// Predicates returns the accumulated predicates.
func (b *Builder) Predicates() []*Predicate { return slices.Clone(b.predicates) }

// WhereClause renders the accumulated predicates as a WHERE clause joined by
// AND, or returns an empty string if there are none.
func (b *Builder) WhereClause() string {
	if len(b.predicates) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("WHERE ")
	for i, p := range b.predicates {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(p.sql)
	}
	return sb.String()
}

// Text returns the statement text. The first successful call renders and
// caches it; every later call returns the cached text.
func (b *Builder) Text() (string, error) {
	return b.text.get(func() (string, error) {
		if err := b.ready(); err != nil {
			return "", err
		}
		text, err := b.renderer.RenderText(b)
		if err != nil {
			return "", err
		}
		if err := b.Err(); err != nil {
			return "", err
		}
		b.logger.Debug("statement text frozen", "table", b.desc.Table(), "predicates", len(b.predicates))
		return text, nil
	})
}

// Parameters returns the statement parameters: the renderer's base values
// followed by the values of all predicates. The first successful call
// computes and caches the list, independently of Text; later calls return
// a copy of the cached list.
func (b *Builder) Parameters() ([]any, error) {
	params, err := b.params.get(func() ([]any, error) {
		if err := b.ready(); err != nil {
			return nil, err
		}
		base, err := b.renderer.RenderBaseParameters(b)
		if err != nil {
			return nil, err
		}
		if err := b.Err(); err != nil {
			return nil, err
		}
		params := make([]any, 0, len(base)+len(b.args))
		params = append(params, base...)
		params = append(params, b.args...)
		b.logger.Debug("statement parameters frozen", "table", b.desc.Table(), "count", len(params))
		return params, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(params), nil
}

// TextFrozen reports whether the statement text has been cached.
func (b *Builder) TextFrozen() bool { return b.text.filled() }

// ParametersFrozen reports whether the parameter list has been cached.
func (b *Builder) ParametersFrozen() bool { return b.params.filled() }

// Query returns the statement text and its parameters.
func (b *Builder) Query() (string, []any, error) {
	text, err := b.Text()
	if err != nil {
		return "", nil, err
	}
	params, err := b.Parameters()
	if err != nil {
		return "", nil, err
	}
	return text, params, nil
}

// Statement returns the finished statement as a value that can be handed to
// an execution layer.
func (b *Builder) Statement() (*Statement, error) {
	text, params, err := b.Query()
	if err != nil {
		return nil, err
	}
	return &Statement{SQL: text, Args: params}, nil
}

// ready reports the errors that prevent rendering.
func (b *Builder) ready() error {
	if err := b.Err(); err != nil {
		return err
	}
	if b.desc == nil {
		return sqlmaker.ErrNoEntity
	}
	return nil
}
