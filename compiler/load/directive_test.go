package load

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirectives(t *testing.T) {
	pos := token.Position{Filename: "status.go", Line: 3, Column: 1}

	t.Run("NotADirective", func(t *testing.T) {
		for _, text := range []string{"// Status is a state.", "//go:generate dbtype", "// dbtype:enum"} {
			_, _, ok := ParseDirectives(text, pos)
			assert.False(t, ok, text)
		}
	})

	t.Run("KindAndFlags", func(t *testing.T) {
		dirs, err, ok := ParseDirectives("//dbtype:enum backends=postgres,mysql json", pos)
		require.True(t, ok)
		require.Nil(t, err)
		require.Len(t, dirs, 3)
		assert.Equal(t, "enum", dirs[0].Key)
		assert.False(t, dirs[0].HasValue)
		assert.Equal(t, "backends", dirs[1].Key)
		assert.Equal(t, "postgres,mysql", dirs[1].Value)
		assert.True(t, dirs[1].HasValue)
		assert.Equal(t, "json", dirs[2].String())
		assert.Equal(t, 10, dirs[0].Pos.Column)
		assert.Equal(t, 15, dirs[1].Pos.Column)
	})

	t.Run("QuotedValue", func(t *testing.T) {
		dirs, err, ok := ParseDirectives(`//dbtype:rename="Past \"Due\"" `, pos)
		require.True(t, ok)
		require.Nil(t, err)
		require.Len(t, dirs, 1)
		assert.Equal(t, `Past "Due"`, dirs[0].Value)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		dirs, err, ok := ParseDirectives(`//dbtype:rename=`, pos)
		require.True(t, ok)
		require.Nil(t, err)
		require.Len(t, dirs, 1)
		assert.True(t, dirs[0].HasValue)
		assert.Empty(t, dirs[0].Value)
	})

	t.Run("Empty", func(t *testing.T) {
		dirs, err, ok := ParseDirectives("//dbtype:", pos)
		assert.True(t, ok)
		assert.Nil(t, err)
		assert.Empty(t, dirs)
	})

	t.Run("Unterminated", func(t *testing.T) {
		_, err, ok := ParseDirectives(`//dbtype:rename="oops`, pos)
		require.True(t, ok)
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "unterminated quoted value")
		assert.Contains(t, err.Error(), "status.go:3:")
	})

	t.Run("MissingKey", func(t *testing.T) {
		_, err, ok := ParseDirectives(`//dbtype:enum =x`, pos)
		require.True(t, ok)
		require.NotNil(t, err)
		assert.Contains(t, err.Msg, "missing key")
	})
}
