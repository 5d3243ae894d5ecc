// Package value defines the canonical in-memory representation of a
// decoded document: scalars are Go built-ins (nil, bool, string,
// json.Number, int64, float64, []byte), sequences are []any, and
// mappings are *Map, which remembers insertion order so that
// order-sensitive encodings (table columns, document key order) survive
// a format conversion.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Map is a string-keyed mapping that preserves insertion order.
// Lookup is constant time; key iteration follows the order in which
// keys were first set.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty ordered mapping.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores v under key, appending the key to the iteration order on
// first insertion. Re-setting an existing key keeps its original
// position. Returns the map for chaining.
func (m *Map) Set(key string, v any) *Map {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// MarshalJSON writes the mapping as a JSON object with keys in
// insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the mapping as one-line JSON. Used when a mapping has
// to fit into a scalar slot, e.g. a CSV cell.
func (m *Map) String() string {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprintf("<unprintable mapping: %v>", err)
	}
	return string(b)
}

// Plain converts a value tree into built-in containers only:
// *Map becomes map[string]any and json.Number becomes int64 or
// float64. Libraries that traverse generic data by type switch
// (the query evaluator, the TOML encoder) need this form; ordering
// information is lost, which is why identity pipelines skip the
// conversion entirely.
func Plain(v any) any {
	switch t := v.(type) {
	case *Map:
		out := make(map[string]any, t.Len())
		for _, k := range t.keys {
			out[k] = Plain(t.values[k])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[k] = Plain(el)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = Plain(el)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

// FromPlain converts built-in containers into the canonical tree.
// Built-in maps carry no order, so keys are sorted for determinism.
func FromPlain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, FromPlain(t[k]))
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = FromPlain(el)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = FromPlain(el)
		}
		return out
	default:
		return v
	}
}
