package gen

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)

	assert.True(t, c.Documentation)
	assert.True(t, c.Metadata)
	assert.False(t, c.Debug)
	assert.False(t, c.UseTab)
	assert.Equal(t, DefaultIndentSpaces, c.IndentSpaces)
	assert.Equal(t, "    ", c.Indent())
	assert.NotNil(t, c.Logger)
}

func TestWithIndentSpaces(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		indent  string
		wantErr bool
	}{
		{"zero", 0, "", false},
		{"two", 2, "  ", false},
		{"max", MaxIndentSpaces, "                ", false},
		{"negative", -1, "", true},
		{"too wide", MaxIndentSpaces + 1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{UseTab: true}
			err := WithIndentSpaces(tt.n)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.False(t, c.UseTab)
			assert.Equal(t, tt.indent, c.Indent())
		})
	}
}

func TestWithTabs(t *testing.T) {
	c := MustNewConfig(WithTabs(true))
	assert.Equal(t, "\t", c.Indent())

	c = MustNewConfig(WithTabs(true), WithIndentSpaces(2))
	assert.Equal(t, "  ", c.Indent())

	c = MustNewConfig(WithIndentSpaces(2), WithTabs(true), WithTabs(false))
	assert.Equal(t, "  ", c.Indent())
}

func TestWithLogger(t *testing.T) {
	t.Run("sets logger", func(t *testing.T) {
		l := slog.New(slog.NewTextHandler(io.Discard, nil))
		c := MustNewConfig(WithLogger(l))
		assert.Same(t, l, c.Logger)
	})

	t.Run("nil logger is rejected", func(t *testing.T) {
		_, err := NewConfig(WithLogger(nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestToggles(t *testing.T) {
	c := MustNewConfig(WithDocumentation(false), WithDebug(true), WithMetadata(false))
	assert.False(t, c.Documentation)
	assert.True(t, c.Debug)
	assert.False(t, c.Metadata)
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithIndentSpaces(-1), WithDebug(true), WithLogger(nil))

	require.Error(t, err)
	assert.True(t, c.Debug)
	assert.Contains(t, err.Error(), "IndentSpaces")
	assert.Contains(t, err.Error(), "Logger")
}

func TestApplyStopsAtFirstError(t *testing.T) {
	c := &Config{}
	err := c.Apply(WithIndentSpaces(-1), WithDebug(true))

	require.Error(t, err)
	assert.False(t, c.Debug)
}

func TestMustNewConfigPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewConfig(WithIndentSpaces(99))
	})
}
