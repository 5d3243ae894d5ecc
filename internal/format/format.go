// Package format implements the serialization boundary of the tool:
// the format tags, the input-format detector, and the per-format
// decoders and encoders that move between raw text and the value tree.
package format

// Format identifies a serialization format. LDIF is input-only; Raw
// and Table are output-only renderings.
type Format int

const (
	Unknown Format = iota
	JSON
	YAML
	TOML
	CSV
	LDIF
	Raw
	Table
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	case CSV:
		return "csv"
	case LDIF:
		return "ldif"
	case Raw:
		return "raw"
	case Table:
		return "table"
	default:
		return "unknown"
	}
}
