package schema

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/syssam/sqlmaker"
)

// Resolver resolves an entity token to its Descriptor. Implementations must
// be deterministic and free of side effects visible to the caller.
type Resolver interface {
	Resolve(entity any) (*Descriptor, error)
}

// ResolverFunc is an adapter to allow the use of ordinary functions as
// Resolver.
type ResolverFunc func(entity any) (*Descriptor, error)

// Resolve calls f(entity).
func (f ResolverFunc) Resolve(entity any) (*Descriptor, error) {
	return f(entity)
}

// Default is the registry used by builders that are not given a resolver.
var Default = NewRegistry()

// Registry is a concurrency-safe Resolver backed by registered descriptors
// and a cache of inspected struct types.
type Registry struct {
	mu     sync.RWMutex
	names  map[string]*Descriptor
	types  map[reflect.Type]*Descriptor
	group  singleflight.Group
	logger *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used for inspection and reload events.
// The default is slog.Default().
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		names:  make(map[string]*Descriptor),
		types:  make(map[reflect.Type]*Descriptor),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds descriptors under their entity names. It fails without
// registering anything if a name is already taken.
func (r *Registry) Register(ds ...*Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool, len(ds))
	for _, d := range ds {
		if err := validDescriptor(d); err != nil {
			return err
		}
		if _, ok := r.names[d.entity]; ok || seen[d.entity] {
			return fmt.Errorf("%w: entity %q is already registered", sqlmaker.ErrInvalidArgument, d.entity)
		}
		seen[d.entity] = true
	}
	for _, d := range ds {
		r.names[d.entity] = d
	}
	return nil
}

// replace registers descriptors, overwriting existing names.
func (r *Registry) replace(ds []*Descriptor) error {
	for _, d := range ds {
		if err := validDescriptor(d); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range ds {
		r.names[d.entity] = d
	}
	return nil
}

func validDescriptor(d *Descriptor) error {
	switch {
	case d == nil:
		return fmt.Errorf("%w: nil descriptor", sqlmaker.ErrInvalidArgument)
	case d.table == "":
		return fmt.Errorf("%w: descriptor %q has no table", sqlmaker.ErrInvalidArgument, d.entity)
	}
	return nil
}

// Len returns the number of registered entity names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Descriptors returns the registered descriptors keyed by entity name.
func (r *Registry) Descriptors() map[string]*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.names)
}

// Resolve implements Resolver. The entity may be a registered name, a
// reflect.Type, a struct value or a pointer to a struct; a typed nil
// pointer is accepted since only its type is used.
func (r *Registry) Resolve(entity any) (*Descriptor, error) {
	switch e := entity.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil entity", sqlmaker.ErrInvalidArgument)
	case *Descriptor:
		if err := validDescriptor(e); err != nil {
			return nil, err
		}
		return e, nil
	case string:
		return r.resolveName(e)
	case reflect.Type:
		return r.resolveType(e)
	default:
		return r.resolveType(reflect.TypeOf(entity))
	}
}

func (r *Registry) resolveName(name string) (*Descriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty entity name", sqlmaker.ErrInvalidArgument)
	}
	r.mu.RLock()
	d, ok := r.names[name]
	r.mu.RUnlock()
	if !ok {
		return nil, sqlmaker.NewEntityError(name, sqlmaker.ErrNotFound)
	}
	return d, nil
}

func (r *Registry) resolveType(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil entity type", sqlmaker.ErrInvalidArgument)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	r.mu.RLock()
	d, ok := r.types[t]
	r.mu.RUnlock()
	if ok {
		return d, nil
	}
	// Function-local types can share a package path and a name, so the key
	// carries the type's identity.
	v, err, _ := r.group.Do(fmt.Sprintf("%s@%p", t, t), func() (any, error) {
		d, err := Inspect(t)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		if cached, ok := r.types[t]; ok {
			d = cached
		} else {
			r.types[t] = d
		}
		r.mu.Unlock()
		r.logger.Debug("schema inspected", "type", t.String(), "table", d.Table(), "columns", len(d.columns))
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Descriptor), nil
}

var _ Resolver = (*Registry)(nil)
