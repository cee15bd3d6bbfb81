package schema_test

import (
	"testing"

	atlas "ariga.io/atlas/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmaker"
	"github.com/syssam/sqlmaker/schema"
)

func atlasUsers() *atlas.Table {
	return atlas.NewTable("users").AddColumns(
		atlas.NewIntColumn("id", "integer"),
		atlas.NewStringColumn("first_name", "text"),
	)
}

func TestFromAtlas(t *testing.T) {
	t.Parallel()

	d, err := schema.FromAtlas(atlasUsers())
	require.NoError(t, err)
	assert.Equal(t, "users", d.Entity())
	assert.Equal(t, "users", d.Table())
	assert.Equal(t, []string{"id", "first_name"}, d.Columns())
	c, ok := d.Column("FirstName")
	assert.True(t, ok)
	assert.Equal(t, "first_name", c)

	_, err = schema.FromAtlas(nil)
	assert.True(t, sqlmaker.IsInvalidArgument(err))

	_, err = schema.FromAtlas(atlas.NewTable("empty"))
	assert.True(t, sqlmaker.IsInvalidArgument(err))
}

func TestRegistryRegisterAtlas(t *testing.T) {
	t.Parallel()

	reg := schema.NewRegistry()
	s := atlas.New("main").AddTables(
		atlasUsers(),
		atlas.NewTable("posts").AddColumns(atlas.NewIntColumn("id", "integer")),
	)
	require.NoError(t, reg.RegisterAtlas(s))
	assert.Equal(t, 2, reg.Len())

	d, err := reg.Resolve("posts")
	require.NoError(t, err)
	assert.True(t, d.HasColumn("id"))

	// Registering the same schema twice fails on the taken names.
	assert.True(t, sqlmaker.IsInvalidArgument(reg.RegisterAtlas(s)))
	assert.True(t, sqlmaker.IsInvalidArgument(reg.RegisterAtlas(nil)))
}
