package graphql

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const baseConfig = `# gqlgen configuration
schema: graph/base.graphqls
exec:
  filename: graph/generated.go
  package: graph
models:
  ID:
    model: github.com/99designs/gqlgen/graphql.ID
`

func TestStringList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StringList
	}{
		{"scalar", "schema: a.graphql", StringList{"a.graphql"}},
		{"list", "schema: [a.graphql, b.graphql]", StringList{"a.graphql", "b.graphql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg GQLGenConfig
			require.NoError(t, yaml.Unmarshal([]byte(tt.in), &cfg))
			assert.Equal(t, tt.want, cfg.SchemaFilename)
		})
	}

	t.Run("mapping is rejected", func(t *testing.T) {
		var cfg GQLGenConfig
		require.Error(t, yaml.Unmarshal([]byte("schema: {a: b}"), &cfg))
	})

	t.Run("marshal single value as scalar", func(t *testing.T) {
		out, err := yaml.Marshal(GQLGenConfig{SchemaFilename: StringList{"a.graphql"}})
		require.NoError(t, err)
		assert.Equal(t, "schema: a.graphql\n", string(out))
	})
}

func TestLoadGQLGenConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadGQLGenConfig(filepath.Join(t.TempDir(), "gqlgen.yml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.SchemaFilename)
		assert.NotNil(t, cfg.Models)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gqlgen.yml")
		require.NoError(t, os.WriteFile(path, []byte("schema: [a"), 0o644))
		_, err := LoadGQLGenConfig(path)
		require.Error(t, err)
	})
}

func TestRegisterSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gqlgen.yml")
	require.NoError(t, os.WriteFile(path, []byte(baseConfig), 0o644))
	schema := filepath.Join(dir, "graph", "shop.graphql")

	err := RegisterSchema(context.Background(), path, schema, map[string]string{"Money": "example.com/money.Amount"})
	require.NoError(t, err)

	cfg, err := LoadGQLGenConfig(path)
	require.NoError(t, err)
	assert.Equal(t, StringList{"graph/base.graphqls", "graph/shop.graphql"}, cfg.SchemaFilename)
	assert.True(t, cfg.HasSchema("graph/shop.graphql"))
	assert.True(t, cfg.Bound("ID"))
	assert.Equal(t, StringList{"example.com/money.Amount"}, cfg.Models["Money"].Model)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# gqlgen configuration")
	assert.Contains(t, string(data), "filename: graph/generated.go")

	// Registering again leaves the file untouched.
	require.NoError(t, RegisterSchema(context.Background(), path, schema, map[string]string{"Money": "example.com/money.Amount"}))
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestRegisterSchemaCreatesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gqlgen.yml")

	require.NoError(t, RegisterSchema(context.Background(), path, filepath.Join(dir, "schema.graphql"), nil))

	cfg, err := LoadGQLGenConfig(path)
	require.NoError(t, err)
	assert.Equal(t, StringList{"schema.graphql"}, cfg.SchemaFilename)
}

func TestRegisterSchemaRejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gqlgen.yml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o644))

	err := RegisterSchema(context.Background(), path, "schema.graphql", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a mapping")
}

func TestUnboundScalars(t *testing.T) {
	cfg := &GQLGenConfig{Models: map[string]TypeMapEntry{
		"DateTime": {Model: StringList{"time.Time"}},
	}}
	schema := "# Money\nscalar Money\n\nscalar DateTime @specifiedBy(url: \"https://example.com\")\n\nscalar ID\n\ntype A {\n    scalar: Int\n    f(scalar: Int): Int\n}\n"

	assert.Equal(t, []string{"Money", "DateTime", "ID"}, Scalars(schema))
	assert.Equal(t, []string{"Money"}, cfg.UnboundScalars(schema))
}

func TestScalarsIgnoresCommentsAndDescriptions(t *testing.T) {
	schema := "# scalar Commented\n\"\"\"\nscalar Described\n\"\"\"\nscalar Money\n\ntype Product extends Node {\n    price: Money\n}\n"
	assert.Equal(t, []string{"Money"}, Scalars(schema))
	assert.Empty(t, Scalars(""))
}
