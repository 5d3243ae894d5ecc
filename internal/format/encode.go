package format

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hash-d/jmes/internal/value"
)

// Options carries encoder settings that only some formats use.
type Options struct {
	// RawSpec is a verbatim fmt-style directive applied per item by the
	// raw encoder, e.g. "%8.2f". Empty means default rendering.
	RawSpec string
}

// Encode renders a value tree in the given output format. A value
// whose shape does not fit the format's contract yields a *ShapeError
// naming the expected shape.
func Encode(f Format, v any, opts Options) (string, error) {
	switch f {
	case JSON:
		return encodeJSON(v)
	case YAML:
		return encodeYAML(v)
	case TOML:
		return encodeTOML(v)
	case CSV:
		return encodeCSV(v)
	case Raw:
		return encodeRaw(v, opts.RawSpec)
	case Table:
		return encodeTable(v)
	case LDIF:
		return "", &UnsupportedError{Format: LDIF, Contract: ldifOutputContract}
	default:
		return "", fmt.Errorf("%s is not an encodable format", f)
	}
}

func encodeJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(b) + "\n", nil
}

// encodeYAML builds an explicit yaml.Node tree so mapping key order is
// honored and string scalars that look like numbers stay quoted.
func encodeYAML(v any) (string, error) {
	node, err := yamlNode(v)
	if err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

func yamlNode(v any) (*yaml.Node, error) {
	scalar := func(tag, val string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val}
	}
	switch t := v.(type) {
	case nil:
		return scalar("!!null", "null"), nil
	case bool:
		return scalar("!!bool", strconv.FormatBool(t)), nil
	case string:
		return scalar("!!str", t), nil
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return scalar("!!int", t.String()), nil
		}
		return scalar("!!float", t.String()), nil
	case int:
		return scalar("!!int", strconv.Itoa(t)), nil
	case int64:
		return scalar("!!int", strconv.FormatInt(t, 10)), nil
	case float64:
		return scalar("!!float", strconv.FormatFloat(t, 'g', -1, 64)), nil
	case []byte:
		return scalar("!!binary", base64.StdEncoding.EncodeToString(t)), nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range t {
			c, err := yamlNode(el)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case *value.Map:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range t.Keys() {
			el, _ := t.Get(k)
			c, err := yamlNode(el)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, scalar("!!str", k), c)
		}
		return n, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			c, err := yamlNode(t[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, scalar("!!str", k), c)
		}
		return n, nil
	default:
		return scalar("!!str", fmt.Sprint(t)), nil
	}
}

// encodeTOML requires a document-shaped value: TOML cannot represent a
// bare scalar or sequence at the top level.
func encodeTOML(v any) (string, error) {
	switch v.(type) {
	case *value.Map, map[string]any:
	default:
		return "", &ShapeError{Format: TOML, Need: "a table (mapping) at the top level"}
	}
	b, err := toml.Marshal(value.Plain(v))
	if err != nil {
		return "", fmt.Errorf("encode toml: %w", err)
	}
	return string(b), nil
}

// encodeRaw emits unadorned text: a string as-is, a sequence one
// element per line, a mapping one key per line, anything else in its
// default string form. The optional spec is a fmt directive applied
// verbatim to each item; a directive the item cannot satisfy is an
// error rather than a silent no-op.
func encodeRaw(v any, spec string) (string, error) {
	var lines []string
	switch t := v.(type) {
	case []any:
		for _, el := range t {
			s, err := rawItem(el, spec)
			if err != nil {
				return "", err
			}
			lines = append(lines, s)
		}
	case *value.Map:
		for _, k := range t.Keys() {
			s, err := rawItem(k, spec)
			if err != nil {
				return "", err
			}
			lines = append(lines, s)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s, err := rawItem(k, spec)
			if err != nil {
				return "", err
			}
			lines = append(lines, s)
		}
	default:
		s, err := rawItem(t, spec)
		if err != nil {
			return "", err
		}
		lines = append(lines, s)
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func rawItem(v any, spec string) (string, error) {
	if spec == "" {
		if s, ok := v.(string); ok {
			return s, nil
		}
		return cellText(v), nil
	}
	if !strings.ContainsRune(spec, '%') {
		return "", fmt.Errorf("raw format %q contains no formatting directive", spec)
	}
	s := fmt.Sprintf(spec, v)
	if strings.Contains(s, "%!") {
		return "", fmt.Errorf("raw format %q cannot format %v", spec, v)
	}
	return s, nil
}

// encodeTable renders a sequence of mappings as a bordered table with
// a leading index column. Same shape contract as CSV.
func encodeTable(v any) (string, error) {
	recs, ok := records(v)
	if !ok {
		return "", &ShapeError{Format: Table, Need: "a list of dictionaries"}
	}
	fields := fieldUnion(recs)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(append([]string{"#"}, fields...)...)
	for i, rec := range recs {
		row := make([]string, 0, len(fields)+1)
		row = append(row, strconv.Itoa(i))
		for _, name := range fields {
			cell := ""
			if el, ok := rec.Get(name); ok {
				cell = cellText(el)
			}
			row = append(row, cell)
		}
		t.Row(row...)
	}
	return t.Render() + "\n", nil
}

// cellText renders a value into a single scalar slot. Containers
// collapse to one-line JSON; binary that survived sanitization is
// base64 so it cannot corrupt the surrounding encoding.
func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []byte:
		return base64.StdEncoding.EncodeToString(t)
	case *value.Map:
		return t.String()
	case []any, map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
