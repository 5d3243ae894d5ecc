// Package pipeline sequences one invocation: read input, detect the
// format, decode, evaluate the query, encode, and route the result.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hash-d/jmes/internal/format"
	"github.com/hash-d/jmes/internal/query"
)

// Sink receives the final encoded text. The output format is passed
// along so the sink can pick a colorizer.
type Sink interface {
	Write(text string, f format.Format) error
}

// Request describes one conversion.
type Request struct {
	// Expression is the path query; empty means identity.
	Expression string
	// Path is the input file; "" or "-" reads stdin.
	Path string
	// In forces the input format; Unknown lets the detector decide.
	In format.Format
	// Out forces the output format; Unknown preserves the input format.
	Out format.Format
	// RawSpec is the per-item directive for raw output.
	RawSpec string
}

// Pipeline holds the collaborators for a run. The evaluator is
// injected so the pipeline can be exercised without any particular
// expression language.
type Pipeline struct {
	Eval  query.Evaluator
	Sink  Sink
	Log   *slog.Logger
	Stdin io.Reader
}

// Run executes the conversion. Every error is fatal to the invocation
// and nothing is written once one fires.
func (p *Pipeline) Run(req Request) error {
	data, filename, err := p.read(req.Path)
	if err != nil {
		return err
	}

	in, reason, err := format.Detect(req.In, filename, data)
	if err != nil {
		return err
	}
	p.Log.Info("input format", "format", in.String(), "reason", reason)

	doc, err := format.Decode(in, data)
	if err != nil {
		return err
	}

	result, err := p.Eval.Evaluate(req.Expression, doc)
	if err != nil {
		return err
	}

	out := req.Out
	if out == format.Unknown {
		out = in
	}
	text, err := format.Encode(out, result, format.Options{RawSpec: req.RawSpec})
	if err != nil {
		return err
	}
	return p.Sink.Write(text, out)
}

// read returns the input bytes and the filename usable for extension
// detection ("" when reading stdin).
func (p *Pipeline) read(path string) ([]byte, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(p.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, path, nil
}
