package maker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/sqlmaker"
	"github.com/syssam/sqlmaker/maker"
)

const likeEscape = `name LIKE ? ESCAPE '\'`

func TestPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    *maker.Predicate
		sql  string
		args []any
	}{
		{"EQ", maker.EQ("name", "a8m"), "name = ?", []any{"a8m"}},
		{"NEQ", maker.NEQ("name", "a8m"), "name <> ?", []any{"a8m"}},
		{"GT", maker.GT("age", 1), "age > ?", []any{1}},
		{"GTE", maker.GTE("age", 1), "age >= ?", []any{1}},
		{"LT", maker.LT("age", 1), "age < ?", []any{1}},
		{"LTE", maker.LTE("age", 1), "age <= ?", []any{1}},
		{"Like", maker.Like("name", "a_m"), "name LIKE ?", []any{"a_m"}},
		{"Contains", maker.Contains("name", "8"), likeEscape, []any{"%8%"}},
		{"ContainsWildcards", maker.Contains("name", `50%_\`), likeEscape, []any{`%50\%\_\\%`}},
		{"HasPrefix", maker.HasPrefix("name", "a"), likeEscape, []any{"a%"}},
		{"HasPrefixWildcard", maker.HasPrefix("name", "a_"), likeEscape, []any{`a\_%`}},
		{"HasSuffix", maker.HasSuffix("name", "m"), likeEscape, []any{"%m"}},
		{"HasSuffixWildcard", maker.HasSuffix("name", "%m"), likeEscape, []any{`%\%m`}},
		{"IsNull", maker.IsNull("name"), "name IS NULL", nil},
		{"NotNull", maker.NotNull("name"), "name IS NOT NULL", nil},
		{"Between", maker.Between("age", 1, 9), "age BETWEEN ? AND ?", []any{1, 9}},
		{"In", maker.In("id", 1, 2, 3), "id IN (?, ?, ?)", []any{1, 2, 3}},
		{"InEmpty", maker.In("id"), "1 = 0", nil},
		{"NotIn", maker.NotIn("id", 1), "id NOT IN (?)", []any{1}},
		{"NotInEmpty", maker.NotIn("id"), "1 = 1", nil},
		{"Not", maker.Not(maker.EQ("id", 1)), "NOT (id = ?)", []any{1}},
		{"Expr", maker.Expr("lower(name) = ?", "a8m"), "lower(name) = ?", []any{"a8m"}},
		{"And", maker.And(maker.EQ("id", 1), maker.IsNull("name")), "(id = ? AND name IS NULL)", []any{1}},
		{"Or", maker.Or(maker.EQ("id", 1), maker.EQ("id", 2)), "(id = ? OR id = ?)", []any{1, 2}},
		{"AndEmpty", maker.And(), "1 = 1", nil},
		{"OrEmpty", maker.Or(), "1 = 0", nil},
		{"AndSingle", maker.And(maker.GT("age", 3)), "age > ?", []any{3}},
		{"AndSkipsNil", maker.And(maker.EQ("id", 1), nil, maker.EQ("age", 2)), "(id = ? AND age = ?)", []any{1, 2}},
		{"OrSkipsNil", maker.Or(nil, maker.EQ("id", 1)), "id = ?", []any{1}},
		{"OrAllNil", maker.Or(nil, nil), "1 = 0", nil},
		{
			"Nested",
			maker.Or(maker.And(maker.EQ("a", 1), maker.EQ("b", 2)), maker.Not(maker.In("c", 3, 4))),
			"((a = ? AND b = ?) OR NOT (c IN (?, ?)))",
			[]any{1, 2, 3, 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sql, tt.p.SQL())
			assert.Equal(t, tt.sql, tt.p.String())
			if tt.args == nil {
				assert.False(t, tt.p.HasValue())
				assert.Empty(t, tt.p.Args())
				return
			}
			assert.True(t, tt.p.HasValue())
			assert.Equal(t, tt.args, tt.p.Args())
		})
	}
}

func TestPredicateImmutable(t *testing.T) {
	t.Parallel()

	vs := []any{1, 2}
	p := maker.In("id", vs...)
	vs[0] = 100
	assert.Equal(t, []any{1, 2}, p.Args())

	args := p.Args()
	args[1] = 200
	assert.Equal(t, []any{1, 2}, p.Args())
}

func TestNotNil(t *testing.T) {
	t.Parallel()

	p := maker.Not(nil)
	assert.Nil(t, p)

	b := newBuilder(t, &countingRenderer{}).Bind("user").Where(p)
	assert.True(t, sqlmaker.IsInvalidArgument(b.Err()))
	assert.Empty(t, b.Predicates())
}

func TestFields(t *testing.T) {
	t.Parallel()

	var (
		age  = maker.Field[int]("age")
		name = maker.String("name")
	)
	assert.Equal(t, "age", age.Name())

	tests := []struct {
		p    *maker.Predicate
		sql  string
		args []any
	}{
		{age.EQ(1), "age = ?", []any{1}},
		{age.NEQ(1), "age <> ?", []any{1}},
		{age.GT(1), "age > ?", []any{1}},
		{age.GTE(1), "age >= ?", []any{1}},
		{age.LT(1), "age < ?", []any{1}},
		{age.LTE(1), "age <= ?", []any{1}},
		{age.In(1, 2), "age IN (?, ?)", []any{1, 2}},
		{age.NotIn(1, 2), "age NOT IN (?, ?)", []any{1, 2}},
		{age.IsNull(), "age IS NULL", nil},
		{age.NotNull(), "age IS NOT NULL", nil},
		{name.EQ("a8m"), "name = ?", []any{"a8m"}},
		{name.Contains("a"), likeEscape, []any{"%a%"}},
		{name.Contains("a_b"), likeEscape, []any{`%a\_b%`}},
		{name.HasPrefix("a"), likeEscape, []any{"a%"}},
		{name.HasSuffix("m"), likeEscape, []any{"%m"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.sql, tt.p.SQL())
		if tt.args == nil {
			assert.Empty(t, tt.p.Args())
		} else {
			assert.Equal(t, tt.args, tt.p.Args())
		}
	}
}
