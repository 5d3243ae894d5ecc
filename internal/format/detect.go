package format

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Detect determines the input format from, in fixed priority order: an
// explicit flag, the filename extension, and finally the first
// non-whitespace byte of the content. The second return value is a
// human-readable statement of which rule fired, intended for a
// diagnostic stream separate from program output.
//
// The priority chain is a list of matchers tried in order so the order
// is visible in one place rather than buried in nested conditionals.
func Detect(explicit Format, filename string, content []byte) (Format, string, error) {
	matchers := []func() (Format, string, bool){
		func() (Format, string, bool) { return byFlag(explicit) },
		func() (Format, string, bool) { return byExtension(filename) },
	}
	for _, match := range matchers {
		if f, reason, ok := match(); ok {
			return f, reason, nil
		}
	}
	return bySniff(content)
}

func byFlag(explicit Format) (Format, string, bool) {
	if explicit == Unknown {
		return Unknown, "", false
	}
	return explicit, fmt.Sprintf("%s given on the command line", explicit), true
}

func byExtension(filename string) (Format, string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	var f Format
	switch ext {
	case ".yaml", ".yml":
		f = YAML
	case ".json":
		f = JSON
	case ".toml":
		f = TOML
	case ".csv":
		f = CSV
	default:
		return Unknown, "", false
	}
	return f, fmt.Sprintf("%s inferred from extension %s", f, ext), true
}

// bySniff inspects the first non-whitespace byte. A document starting
// with '{' or '[' is taken as JSON; anything else falls back to YAML,
// which is the most permissive of the supported formats. Empty content
// is fatal: there is nothing to guess from.
func bySniff(content []byte) (Format, string, error) {
	for _, b := range content {
		if unicode.IsSpace(rune(b)) {
			continue
		}
		if b == '{' || b == '[' {
			return JSON, fmt.Sprintf("json sniffed from leading %q", string(b)), nil
		}
		return YAML, "yaml assumed as fallback", nil
	}
	return Unknown, "", ErrEmptyInput
}
