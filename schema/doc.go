// Package schema maps entity types to the tables that store them.
//
// A [Descriptor] is the immutable mapping of one entity: its table name, the
// set of valid column names, and a dictionary from Go field names (or any
// logical field name) to column names. A [Resolver] turns an entity token into
// a Descriptor; statement builders consume it through that contract only.
//
// # Registry
//
// [Registry] is the concrete, concurrency-safe Resolver. It accepts several
// kinds of entity tokens:
//
//	reg := schema.NewRegistry()
//
//	// Struct values, pointers and reflect.Type values are inspected once.
//	reg.Resolve(User{})
//	reg.Resolve((*User)(nil))
//	reg.Resolve(reflect.TypeOf(User{}))
//
//	// Registered names resolve to the descriptor registered under them.
//	reg.Register(schema.Unchecked("audit", "audit_log"))
//	reg.Resolve("audit")
//
// # Struct Inspection
//
// Exported fields become columns. The column name is taken from the db tag,
// or derived from the field name in snake case. Embedded structs are
// flattened, and db:"-" skips a field:
//
//	type User struct {
//	    ID        int64     `db:"id"`
//	    Name      string    // name
//	    CreatedAt time.Time // created_at
//	    Secret    string    `db:"-"`
//	}
//
// The table name is the pluralized snake-case type name (users), unless the
// type implements [TableNamer].
//
// # Schema Files
//
// Descriptors can be loaded from YAML:
//
//	entities:
//	  - name: user
//	    table: users
//	    columns: [id, name, email]
//	    fields:
//	      Name: name
//	  - name: audit
//	    table: audit_log
//	    unchecked: true
//
// [Registry.Watch] reloads such a file whenever it changes. Builders bound
// before a reload keep the descriptor they resolved.
//
// # Atlas
//
// Tables described with ariga.io/atlas can be registered directly with
// [Registry.RegisterAtlas] or converted with [FromAtlas].
package schema
