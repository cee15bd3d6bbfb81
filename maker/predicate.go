package maker

import (
	"slices"
	"strings"
)

// Predicate is one conjunctive condition of a WHERE clause: a SQL fragment
// with ? placeholders and the values bound to them, in order. A Predicate is
// immutable.
//
// Constructors take column names verbatim. Validate them first, for example
// with Builder.C, when they come from untrusted input.
type Predicate struct {
	sql  string
	args []any
}

// Expr returns a predicate from a raw SQL fragment and its values.
//
// The builder joins predicates with AND without adding parentheses, so a
// fragment containing OR must be parenthesized or built with Or:
//
//	maker.Expr("(a = ? OR b = ?)", 1, 2)
func Expr(sql string, args ...any) *Predicate {
	return &Predicate{sql: sql, args: slices.Clone(args)}
}

// SQL returns the SQL fragment.
func (p *Predicate) SQL() string { return p.sql }

// Args returns a copy of the bound values.
func (p *Predicate) Args() []any { return slices.Clone(p.args) }

// HasValue reports whether the predicate carries bound values.
func (p *Predicate) HasValue() bool { return len(p.args) > 0 }

// String implements fmt.Stringer.
func (p *Predicate) String() string { return p.sql }

func binary(column, op string, v any) *Predicate {
	return &Predicate{sql: column + " " + op + " ?", args: []any{v}}
}

// EQ returns a "column = ?" predicate.
func EQ(column string, v any) *Predicate { return binary(column, "=", v) }

// NEQ returns a "column <> ?" predicate.
func NEQ(column string, v any) *Predicate { return binary(column, "<>", v) }

// GT returns a "column > ?" predicate.
func GT(column string, v any) *Predicate { return binary(column, ">", v) }

// GTE returns a "column >= ?" predicate.
func GTE(column string, v any) *Predicate { return binary(column, ">=", v) }

// LT returns a "column < ?" predicate.
func LT(column string, v any) *Predicate { return binary(column, "<", v) }

// LTE returns a "column <= ?" predicate.
func LTE(column string, v any) *Predicate { return binary(column, "<=", v) }

// Like returns a "column LIKE ?" predicate. The pattern is bound as is, so
// its wildcards apply. Contains, HasPrefix and HasSuffix match literally.
func Like(column, pattern string) *Predicate { return binary(column, "LIKE", pattern) }

// Contains returns a predicate matching values that contain sub literally.
func Contains(column, sub string) *Predicate {
	return likeEscaped(column, "%"+escapeLike(sub)+"%")
}

// HasPrefix returns a predicate matching values that start with prefix.
func HasPrefix(column, prefix string) *Predicate {
	return likeEscaped(column, escapeLike(prefix)+"%")
}

// HasSuffix returns a predicate matching values that end with suffix.
func HasSuffix(column, suffix string) *Predicate {
	return likeEscaped(column, "%"+escapeLike(suffix))
}

func likeEscaped(column, pattern string) *Predicate {
	return &Predicate{sql: column + ` LIKE ? ESCAPE '\'`, args: []any{pattern}}
}

// escapeLike escapes the LIKE wildcards of s. Backslash goes first.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// IsNull returns a "column IS NULL" predicate.
func IsNull(column string) *Predicate { return &Predicate{sql: column + " IS NULL"} }

// NotNull returns a "column IS NOT NULL" predicate.
func NotNull(column string) *Predicate { return &Predicate{sql: column + " IS NOT NULL"} }

// Between returns a "column BETWEEN ? AND ?" predicate.
func Between(column string, lo, hi any) *Predicate {
	return &Predicate{sql: column + " BETWEEN ? AND ?", args: []any{lo, hi}}
}

// In returns a "column IN (?, ...)" predicate. An empty list never matches.
func In(column string, vs ...any) *Predicate {
	if len(vs) == 0 {
		return &Predicate{sql: "1 = 0"}
	}
	return &Predicate{sql: column + " IN (" + placeholders(len(vs)) + ")", args: slices.Clone(vs)}
}

// NotIn returns a "column NOT IN (?, ...)" predicate. An empty list always
// matches.
func NotIn(column string, vs ...any) *Predicate {
	if len(vs) == 0 {
		return &Predicate{sql: "1 = 1"}
	}
	return &Predicate{sql: column + " NOT IN (" + placeholders(len(vs)) + ")", args: slices.Clone(vs)}
}

// Not negates a predicate. Not(nil) returns nil, which Where rejects.
func Not(p *Predicate) *Predicate {
	if p == nil {
		return nil
	}
	return &Predicate{sql: "NOT (" + p.sql + ")", args: slices.Clone(p.args)}
}

// And groups predicates into one parenthesized conjunction. Nil operands
// are skipped.
func And(ps ...*Predicate) *Predicate { return group(" AND ", ps) }

// Or groups predicates into one parenthesized disjunction. Nil operands are
// skipped.
func Or(ps ...*Predicate) *Predicate { return group(" OR ", ps) }

func group(sep string, ps []*Predicate) *Predicate {
	ps = slices.DeleteFunc(slices.Clone(ps), func(p *Predicate) bool { return p == nil })
	switch len(ps) {
	case 0:
		if sep == " OR " {
			return &Predicate{sql: "1 = 0"}
		}
		return &Predicate{sql: "1 = 1"}
	case 1:
		return ps[0]
	}
	var (
		parts = make([]string, len(ps))
		args  []any
	)
	for i, p := range ps {
		parts[i] = p.sql
		args = append(args, p.args...)
	}
	return &Predicate{sql: "(" + strings.Join(parts, sep) + ")", args: args}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
