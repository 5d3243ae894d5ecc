package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := NewMap().Set("zebra", 1).Set("apple", 2).Set("mango", 3)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
	assert.Equal(t, 3, m.Len())

	// Re-setting an existing key keeps its position.
	m.Set("apple", 99)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
	v, ok := m.Get("apple")
	require.True(t, ok)
	assert.Equal(t, 99, v)
}

func TestMap_MarshalJSONKeepsOrder(t *testing.T) {
	m := NewMap().Set("b", json.Number("1")).Set("a", "x")

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":"x"}`, string(b))
}

func TestMap_StringIsOneLineJSON(t *testing.T) {
	m := NewMap().Set("k", []any{"v"})
	assert.Equal(t, `{"k":["v"]}`, m.String())
}

func TestPlain_ConvertsMapsAndNumbers(t *testing.T) {
	tree := NewMap().
		Set("n", json.Number("42")).
		Set("f", json.Number("1.5")).
		Set("seq", []any{NewMap().Set("x", json.Number("1e3"))})

	plain := Plain(tree)

	m, ok := plain.(map[string]any)
	require.True(t, ok, "root should become a built-in map")
	assert.Equal(t, int64(42), m["n"])
	assert.Equal(t, 1.5, m["f"])

	inner := m["seq"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(1000), inner["x"], "non-integral exponent form becomes float64")
}

func TestFromPlain_SortsKeysAndHandlesTableSlices(t *testing.T) {
	plain := map[string]any{
		"b": []map[string]any{{"k": "v"}},
		"a": 1,
	}

	v := FromPlain(plain)
	m, ok := v.(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Keys(), "built-in maps carry no order, so keys sort")

	seq, _ := m.Get("b")
	rec, ok := seq.([]any)[0].(*Map)
	require.True(t, ok, "array-of-tables elements become ordered maps")
	cell, _ := rec.Get("k")
	assert.Equal(t, "v", cell)
}
