package pipeline

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hash-d/jmes/internal/format"
	"github.com/hash-d/jmes/internal/query"
)

// captureSink records what the pipeline would have written.
type captureSink struct {
	text   string
	format format.Format
	writes int
}

func (s *captureSink) Write(text string, f format.Format) error {
	s.text = text
	s.format = f
	s.writes++
	return nil
}

func newPipeline(stdin string, sink *captureSink) *Pipeline {
	return &Pipeline{
		Eval:  query.JSONPath{},
		Sink:  sink,
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stdin: strings.NewReader(stdin),
	}
}

func TestRun_FormatPreservingByDefault(t *testing.T) {
	sink := &captureSink{}
	p := newPipeline(`{"b": 1, "a": 2}`, sink)

	require.NoError(t, p.Run(Request{}))

	assert.Equal(t, format.JSON, sink.format, "sniffed JSON in, JSON out")
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": 2\n}\n", sink.text)
}

func TestRun_YAMLToJSONKeepsScalarsAsStrings(t *testing.T) {
	sink := &captureSink{}
	p := newPipeline("count: 1\n", sink)

	require.NoError(t, p.Run(Request{Out: format.JSON}))

	assert.Equal(t, "{\n  \"count\": \"1\"\n}\n", sink.text,
		"yaml scalars stay strings through a conversion")
}

func TestRun_QueryThenEncode(t *testing.T) {
	sink := &captureSink{}
	p := newPipeline(`{"users": [{"name": "alice"}, {"name": "bob"}]}`, sink)

	require.NoError(t, p.Run(Request{Expression: "$.users[*].name", Out: format.Raw}))

	assert.Equal(t, "alice\nbob\n", sink.text)
}

func TestRun_ReadsNamedFileAndUsesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.yml")
	// Content that would sniff as JSON; the extension must win.
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0o644))

	sink := &captureSink{}
	p := newPipeline("", sink)
	require.NoError(t, p.Run(Request{Path: path, Out: format.JSON}))

	// YAML decode keeps the flow-style document but scalars stringify.
	assert.Contains(t, sink.text, `"a": "1"`)
}

func TestRun_DashForcesStdin(t *testing.T) {
	sink := &captureSink{}
	p := newPipeline(`{"a": 1}`, sink)

	require.NoError(t, p.Run(Request{Path: "-"}))
	assert.Equal(t, format.JSON, sink.format)
}

func TestRun_EmptyInputFailsBeforeDecoding(t *testing.T) {
	sink := &captureSink{}
	p := newPipeline("", sink)

	err := p.Run(Request{})
	assert.ErrorIs(t, err, format.ErrEmptyInput)
	assert.Zero(t, sink.writes, "no partial output once an error fires")
}

func TestRun_ShapeErrorProducesNoOutput(t *testing.T) {
	sink := &captureSink{}
	p := newPipeline(`"just a string"`, sink)

	err := p.Run(Request{Out: format.CSV})
	var shapeErr *format.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Zero(t, sink.writes)
}

func TestRun_LDIFInputDefaultsToUnsupportedLDIFOutput(t *testing.T) {
	sink := &captureSink{}
	p := newPipeline("dn: cn=a,dc=x\ncn: a\n", sink)

	err := p.Run(Request{In: format.LDIF})
	var unsupported *format.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestRun_LDIFToJSON(t *testing.T) {
	sink := &captureSink{}
	p := newPipeline("dn: cn=a,dc=x\ncn: a\n", sink)

	require.NoError(t, p.Run(Request{In: format.LDIF, Out: format.JSON}))
	assert.Contains(t, sink.text, `"cn=a,dc=x"`)
}

func TestRun_CSVToTablePipeline(t *testing.T) {
	sink := &captureSink{}
	p := newPipeline("name,age\nalice,34\n", sink)

	require.NoError(t, p.Run(Request{In: format.CSV, Out: format.Table}))
	assert.Contains(t, sink.text, "alice")
	assert.Contains(t, sink.text, "name")
}
