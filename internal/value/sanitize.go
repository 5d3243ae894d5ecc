package value

import (
	"reflect"
	"unicode/utf8"
)

// Sanitize walks a value tree and replaces every []byte leaf holding
// valid UTF-8 with the equivalent string. Leaves that do not decode are
// kept unchanged, so the result may still contain binary data. This is
// a best-effort, deliberately lossy normalization: a bad leaf never
// blocks its siblings, and Sanitize never fails.
//
// Containers are rebuilt rather than mutated. A visited set guards
// against cyclic container values; decoders never produce cycles, but
// the guard keeps a malformed tree from hanging the process.
func Sanitize(v any) any {
	return sanitize(v, make(map[uintptr]bool))
}

func sanitize(v any, seen map[uintptr]bool) any {
	switch t := v.(type) {
	case []byte:
		if utf8.Valid(t) {
			return string(t)
		}
		return t
	case *Map:
		p := reflect.ValueOf(t).Pointer()
		if seen[p] {
			return t
		}
		seen[p] = true
		out := NewMap()
		for _, k := range t.keys {
			out.Set(k, sanitize(t.values[k], seen))
		}
		return out
	case map[string]any:
		p := reflect.ValueOf(t).Pointer()
		if seen[p] {
			return t
		}
		seen[p] = true
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[k] = sanitize(el, seen)
		}
		return out
	case []any:
		if len(t) == 0 {
			return t
		}
		p := reflect.ValueOf(t).Pointer()
		if seen[p] {
			return t
		}
		seen[p] = true
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = sanitize(el, seen)
		}
		return out
	default:
		return v
	}
}
