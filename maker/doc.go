// Package maker builds parameterized SQL statements for one entity.
//
// A [Builder] owns the statement state: the bound schema descriptor, the
// ordered predicate list and the two cached outputs. The statement shape is
// supplied by a [Renderer]; [Select], [Count], [Insert], [Update] and
// [Delete] cover the common shapes.
//
// # Usage
//
//	b := maker.New(maker.Select("id", "name").OrderBy("id", maker.OrderAsc)).
//	    Bind(User{}).
//	    Where(maker.EQ("status", "active"), maker.GT("age", 18))
//
//	query, args, err := b.Query()
//	// SELECT id, name FROM users WHERE status = ? AND age > ? ORDER BY id ASC
//	// ["active", 18]
//
// # Column Validation
//
// Statement text never embeds a column the bound table does not declare.
// Renderers pass every column reference through [Builder.C], which accepts
// column names and field names and records a [sqlmaker.ColumnError] for
// anything else. Predicate constructors take columns verbatim, so resolve
// untrusted names first:
//
//	b.Where(maker.EQ(b.C(userInput), v))
//
// # Freeze on First Read
//
// [Builder.Text] and [Builder.Parameters] each compute their value once and
// return the cached value afterwards. Predicates appended after the first
// read are not reflected in it:
//
//	b.Where(p1)
//	text, _ := b.Text()   // includes p1
//	b.Where(p2)
//	again, _ := b.Text()  // same as text, p2 is ignored
//
// The two outputs freeze independently. A failed render is not cached.
//
// # Transport
//
// [Builder.Statement] returns a [Statement] that can be encoded with msgpack
// and decoded by a separate execution process with [DecodeStatement].
package maker
