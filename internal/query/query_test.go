package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hash-d/jmes/internal/value"
)

func TestJSONPath_EmptyExpressionIsIdentity(t *testing.T) {
	doc := value.NewMap().Set("b", 1).Set("a", 2)

	out, err := JSONPath{}.Evaluate("", doc)
	require.NoError(t, err)
	assert.Same(t, doc, out, "identity must return the document untouched, order included")
}

func TestJSONPath_SingleMatchUnwraps(t *testing.T) {
	doc := value.NewMap().Set("user", value.NewMap().Set("name", "alice"))

	out, err := JSONPath{}.Evaluate("$.user.name", doc)
	require.NoError(t, err)
	assert.Equal(t, "alice", out)
}

func TestJSONPath_MultipleMatchesBecomeSequence(t *testing.T) {
	doc := value.NewMap().Set("users", []any{
		value.NewMap().Set("name", "alice"),
		value.NewMap().Set("name", "bob"),
	})

	out, err := JSONPath{}.Evaluate("$.users[*].name", doc)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"alice", "bob"}, out)
}

func TestJSONPath_NoMatchIsNull(t *testing.T) {
	doc := value.NewMap().Set("a", 1)

	out, err := JSONPath{}.Evaluate("$.missing", doc)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestJSONPath_ParseErrorNamesExpression(t *testing.T) {
	_, err := JSONPath{}.Evaluate("$[", value.NewMap())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query")
}
