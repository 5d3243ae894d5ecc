// Package query wraps path-expression evaluation behind a small
// interface so the pipeline never depends on a particular expression
// language.
package query

import (
	"fmt"

	"github.com/ohler55/ojg/jp"

	"github.com/hash-d/jmes/internal/value"
)

// Evaluator evaluates a path expression against a decoded document.
// Implementations must treat doc as read-only; the returned value may
// alias parts of it.
type Evaluator interface {
	Evaluate(expression string, doc any) (any, error)
}

// JSONPath evaluates JSONPath expressions with ojg/jp. The zero value
// is ready to use.
type JSONPath struct{}

// Evaluate implements Evaluator. An empty expression is the identity
// query and returns doc untouched, ordering included. Otherwise the
// document is flattened to built-in containers for jp to traverse; a
// single match comes back unwrapped, zero matches as nil, several as a
// sequence.
func (JSONPath) Evaluate(expression string, doc any) (any, error) {
	if expression == "" {
		return doc, nil
	}
	x, err := jp.ParseString(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expression, err)
	}
	results := x.Get(value.Plain(doc))
	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}
