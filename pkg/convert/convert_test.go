package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMap(t *testing.T) {
	m, err := ToMap(map[string]string{"a": "1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1"}, m)

	m, err = ToMap(nil)
	assert.NoError(t, err)
	assert.Nil(t, m)

	_, err = ToMap(map[int]string{1: "a"})
	assert.ErrorIs(t, err, ErrNotMap)

	_, err = ToMap("x")
	assert.ErrorIs(t, err, ErrNotMap)
}

func TestToSliceOfMap(t *testing.T) {
	out, err := ToSliceOfMap([]any{map[string]any{"name": "a"}, map[string]string{"name": "b"}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[1]["name"])

	out, err = ToSliceOfMap(nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = ToSliceOfMap([]any{"x"})
	assert.Error(t, err)

	_, err = ToSliceOfMap(map[string]any{})
	assert.ErrorIs(t, err, ErrNotSlice)
}

func TestToSliceOfString(t *testing.T) {
	out, err := ToSliceOfString([]any{"a", 1, true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "1", "true"}, out)

	_, err = ToSliceOfString("a")
	assert.ErrorIs(t, err, ErrNotSlice)
}
