package schema_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmaker"
	"github.com/syssam/sqlmaker/schema"
)

type base struct {
	ID        int64 `db:"id"`
	CreatedAt time.Time
}

type User struct {
	base
	Name   string
	Email  string `db:"email_address"`
	Secret string `db:"-"`
	note   string
}

type Category struct {
	ID   int64 `db:"id"`
	Name string
}

type Account struct {
	ID int64 `db:"id"`
}

func (*Account) TableName() string { return "accounts_v2" }

type Clash struct {
	A string `db:"value"`
	B string `db:"value"`
}

func TestInspect(t *testing.T) {
	t.Parallel()

	t.Run("Struct", func(t *testing.T) {
		d, err := schema.Inspect(reflect.TypeOf(User{}))
		require.NoError(t, err)
		assert.Equal(t, "User", d.Entity())
		assert.Equal(t, "users", d.Table())
		assert.Equal(t, []string{"id", "created_at", "name", "email_address"}, d.Columns())
		assert.Equal(t, map[string]string{
			"ID":        "id",
			"CreatedAt": "created_at",
			"Name":      "name",
			"Email":     "email_address",
		}, d.Fields())
		assert.False(t, d.HasColumn("secret"))
		assert.False(t, d.HasColumn("note"))
	})

	t.Run("Pluralize", func(t *testing.T) {
		d, err := schema.Inspect(reflect.TypeOf(&Category{}))
		require.NoError(t, err)
		assert.Equal(t, "categories", d.Table())
	})

	t.Run("TableNamer", func(t *testing.T) {
		d, err := schema.Inspect(reflect.TypeOf(Account{}))
		require.NoError(t, err)
		assert.Equal(t, "accounts_v2", d.Table())
	})

	t.Run("NotStruct", func(t *testing.T) {
		_, err := schema.Inspect(reflect.TypeOf(42))
		require.Error(t, err)
		assert.True(t, sqlmaker.IsInvalidArgument(err))
	})

	t.Run("DuplicateColumn", func(t *testing.T) {
		_, err := schema.Inspect(reflect.TypeOf(Clash{}))
		require.Error(t, err)
		assert.True(t, sqlmaker.IsInvalidArgument(err))
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := schema.Inspect(nil)
		assert.True(t, sqlmaker.IsInvalidArgument(err))
	})
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	users, err := schema.NewDescriptor("user", "users", []string{"id", "name"}, nil)
	require.NoError(t, err)
	require.NoError(t, reg.Register(users, schema.Unchecked("audit", "audit_log")))
	assert.Equal(t, 2, reg.Len())

	t.Run("Name", func(t *testing.T) {
		d, err := reg.Resolve("user")
		require.NoError(t, err)
		assert.Same(t, users, d)
	})

	t.Run("UnknownName", func(t *testing.T) {
		_, err := reg.Resolve("order")
		require.Error(t, err)
		assert.True(t, sqlmaker.IsNotFound(err))
		var ee *sqlmaker.EntityError
		require.True(t, errors.As(err, &ee))
		assert.Equal(t, "order", ee.Entity)
	})

	t.Run("Descriptor", func(t *testing.T) {
		d, err := reg.Resolve(users)
		require.NoError(t, err)
		assert.Same(t, users, d)
	})

	t.Run("StructForms", func(t *testing.T) {
		byValue, err := reg.Resolve(Category{})
		require.NoError(t, err)
		byPointer, err := reg.Resolve((*Category)(nil))
		require.NoError(t, err)
		byType, err := reg.Resolve(reflect.TypeOf(Category{}))
		require.NoError(t, err)
		assert.Same(t, byValue, byPointer)
		assert.Same(t, byValue, byType)
	})

	t.Run("InvalidArgument", func(t *testing.T) {
		for _, e := range []any{nil, "", 42, []string{"x"}} {
			_, err := reg.Resolve(e)
			assert.True(t, sqlmaker.IsInvalidArgument(err), "entity %#v", e)
		}
	})
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(schema.Unchecked("audit", "audit_log")))

	t.Run("Duplicate", func(t *testing.T) {
		err := reg.Register(schema.Unchecked("other", "other"), schema.Unchecked("audit", "x"))
		require.Error(t, err)
		assert.True(t, sqlmaker.IsInvalidArgument(err))
		// Nothing from the failed call is registered.
		_, err = reg.Resolve("other")
		assert.True(t, sqlmaker.IsNotFound(err))
	})

	t.Run("Nil", func(t *testing.T) {
		assert.True(t, sqlmaker.IsInvalidArgument(reg.Register(nil)))
	})

	t.Run("NoTable", func(t *testing.T) {
		assert.True(t, sqlmaker.IsInvalidArgument(reg.Register(schema.Unchecked("", ""))))
	})
}

func TestRegistryConcurrentInspect(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	const n = 16
	var (
		wg  sync.WaitGroup
		out = make([]*schema.Descriptor, n)
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := reg.Resolve(User{})
			assert.NoError(t, err)
			out[i] = d
		}()
	}
	wg.Wait()
	for _, d := range out {
		assert.Same(t, out[0], d)
	}
}

func localPoint() reflect.Type {
	type Point struct{ X, Y int }
	return reflect.TypeOf(Point{})
}

func localOtherPoint() reflect.Type {
	type Point struct{ Lat, Lng float64 }
	return reflect.TypeOf(Point{})
}

func TestRegistryConcurrentInspectSameName(t *testing.T) {
	t.Parallel()

	a, b := localPoint(), localOtherPoint()
	require.Equal(t, a.String(), b.String())
	require.Equal(t, a.PkgPath(), b.PkgPath())

	for range 20 {
		reg := schema.NewRegistry()
		const n = 8
		var (
			wg     sync.WaitGroup
			cols   = make([][]string, 2*n)
			inputs = []reflect.Type{a, b}
		)
		for i := range 2 * n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d, err := reg.Resolve(inputs[i%2])
				assert.NoError(t, err)
				if d != nil {
					cols[i] = d.Columns()
				}
			}()
		}
		wg.Wait()
		for i, c := range cols {
			if i%2 == 0 {
				assert.Equal(t, []string{"x", "y"}, c)
			} else {
				assert.Equal(t, []string{"lat", "lng"}, c)
			}
		}
	}
}

func TestResolverFunc(t *testing.T) {
	t.Parallel()

	want := schema.Unchecked("x", "x")
	var r schema.Resolver = schema.ResolverFunc(func(any) (*schema.Descriptor, error) {
		return want, nil
	})
	got, err := r.Resolve("anything")
	require.NoError(t, err)
	assert.Same(t, want, got)
}
