package format

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/hash-d/jmes/internal/value"
)

// sniffSize bounds how much of the input the dialect sniffer looks at.
const sniffSize = 1024

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// sniffDelimiter guesses the field delimiter from the first record in
// the sample: the candidate that appears most often wins. When no
// candidate appears at all the sniff has failed and we silently fall
// back to the comma/double-quote default dialect.
func sniffDelimiter(data []byte) rune {
	sample := data
	if len(sample) > sniffSize {
		sample = sample[:sniffSize]
	}
	line := string(sample)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// decodeCSV reads the first row as field names and yields one ordered
// mapping per data row. CSV is untyped, so every cell stays a string.
// Rows shorter than the header fill the missing cells with "".
func decodeCSV(data []byte) (any, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return []any{}, nil
	}
	header := rows[0]
	out := make([]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := value.NewMap()
		for i, name := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rec.Set(name, cell)
		}
		out = append(out, rec)
	}
	return out, nil
}

// encodeCSV writes a sequence of mappings with the header set to the
// union of all record keys, computed before anything is written so a
// field present in a later record still gets a column. Missing cells
// are written empty.
func encodeCSV(v any) (string, error) {
	recs, ok := records(v)
	if !ok {
		return "", &ShapeError{Format: CSV, Need: "a list of dictionaries"}
	}
	fields := fieldUnion(recs)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(fields))
	for _, rec := range recs {
		for i, name := range fields {
			row[i] = ""
			if cell, ok := rec.Get(name); ok {
				row[i] = cellText(cell)
			}
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return buf.String(), nil
}

// records coerces a value into a list of mappings, the shape required
// by CSV and table output. Plain maps from a query result are ordered
// by sorted key.
func records(v any) ([]*value.Map, bool) {
	seq, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]*value.Map, 0, len(seq))
	for _, el := range seq {
		switch t := el.(type) {
		case *value.Map:
			out = append(out, t)
		case map[string]any:
			out = append(out, value.FromPlain(t).(*value.Map))
		default:
			return nil, false
		}
	}
	return out, true
}

// fieldUnion returns every key appearing in any record, in first-seen
// order across the whole sequence.
func fieldUnion(recs []*value.Map) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, rec := range recs {
		for _, k := range rec.Keys() {
			if !seen[k] {
				seen[k] = true
				fields = append(fields, k)
			}
		}
	}
	return fields
}
