package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-ldap/ldif"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hash-d/jmes/internal/value"
)

// Decode parses data in the given input format into a value tree.
// Parser failures are returned with the underlying library's
// diagnostic wrapped in.
func Decode(f Format, data []byte) (any, error) {
	switch f {
	case JSON:
		return decodeJSON(data)
	case YAML:
		return decodeYAML(data)
	case TOML:
		return decodeTOML(data)
	case CSV:
		return decodeCSV(data)
	case LDIF:
		return decodeLDIF(data)
	default:
		return nil, fmt.Errorf("%s is not a decodable format", f)
	}
}

// decodeJSON parses strictly via the token stream rather than
// Unmarshal so object key order survives into the ordered mapping.
// Numbers are kept as json.Number to preserve their source text.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse json: trailing data after document")
	}
	return v, nil
}

func parseJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil // string, bool, json.Number or nil
	}
	switch delim {
	case '{':
		m := value.NewMap()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %v, not a string", keyTok)
			}
			v, err := parseJSONValue(dec)
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return m, nil
	case '[':
		seq := make([]any, 0)
		for dec.More() {
			v, err := parseJSONValue(dec)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// decodeYAML parses into a yaml.Node tree and walks it keeping every
// scalar as its literal string: no number, boolean, or null inference.
// That is a deliberate policy, not a shortcut — round-tripping a YAML
// document through another format must not turn "1" into an integer.
func decodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}
	return yamlValue(root.Content[0], make(map[*yaml.Node]bool))
}

func yamlValue(n *yaml.Node, seen map[*yaml.Node]bool) (any, error) {
	if seen[n] {
		return nil, errors.New("parse yaml: alias cycle")
	}
	seen[n] = true
	defer delete(seen, n)

	switch n.Kind {
	case yaml.MappingNode:
		m := value.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1], seen)
			if err != nil {
				return nil, err
			}
			m.Set(n.Content[i].Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c, seen)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.AliasNode:
		return yamlValue(n.Alias, seen)
	case yaml.ScalarNode:
		return n.Value, nil
	default:
		return nil, fmt.Errorf("parse yaml: unexpected node kind %d", n.Kind)
	}
}

// decodeTOML goes through go-toml's generic decode. The library only
// exposes unordered maps for generic targets, so keys come out sorted
// rather than in document order.
func decodeTOML(data []byte) (any, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	return value.FromPlain(v), nil
}

// decodeLDIF parses LDIF records into a sequence of two-element pairs:
// the distinguished name and a mapping of attribute name to the list
// of raw attribute values. The parser yields binary values, so the
// result goes through the byte-sanitizer before it is returned.
func decodeLDIF(data []byte) (any, error) {
	l, err := ldif.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse ldif: %w", err)
	}
	out := make([]any, 0, len(l.Entries))
	for _, rec := range l.Entries {
		entry := rec.Entry
		if entry == nil {
			continue // change records carry no plain entry
		}
		attrs := value.NewMap()
		for _, attr := range entry.Attributes {
			vals := make([]any, 0, len(attr.ByteValues))
			for _, bv := range attr.ByteValues {
				vals = append(vals, bytes.Clone(bv))
			}
			attrs.Set(attr.Name, vals)
		}
		out = append(out, []any{entry.DN, attrs})
	}
	return value.Sanitize(out), nil
}

// ldifOutputContract documents what an LDIF encoder would require from
// a query result; Encode references it when rejecting LDIF output.
const ldifOutputContract = "a sequence of (dn, attribute-mapping) pairs"
