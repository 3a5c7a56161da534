package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kson "github.com/ksonlang/kson-go"
)

func TestNavigateByTokensObjectAndList(t *testing.T) {
	v := mustParseValue(t, `
a:
  b: [1, 2, 3]
  .
`)
	got, ok := NavigateByTokens(v, []string{"a", "b", "1"})
	require.True(t, ok)
	assert.Equal(t, int64(2), got.Num.Int)
}

func TestNavigateByTokensGlob(t *testing.T) {
	v := mustParseValue(t, `
item_1: "x"
item_2: "y"
`)
	got, ok := NavigateByTokens(v, []string{"item_*"})
	require.True(t, ok)
	assert.Equal(t, ValueStr(got), "x")
}

func ValueStr(v *kson.Value) string {
	return v.Str
}

func TestFindAtCoordinateNestedArray(t *testing.T) {
	src := "a:\n  b: [1, 2, 3]\n  .\n"
	v := mustParseValue(t, src)
	// line 1 (0-based) is "  b: [1, 2, 3]"; column of the '2' element.
	node, path, ok := FindAtCoordinate(v, 1, 9)
	require.True(t, ok)
	assert.Equal(t, kson.ValueNumber, node.Kind)
	assert.Equal(t, []string{"a", "b", "1"}, path)
}

func TestGetValidSchemasIgnoresMissingRequired(t *testing.T) {
	s := mustParseSchema(t, `
type: "object"
required: [name]
properties:
  name:
    type: "string"
  .
.
`)
	v := mustParseValue(t, `{}`)
	branches := GetValidSchemas(v, s)
	require.Len(t, branches, 1)
}

func TestGetValidSchemasOneOfDiscriminator(t *testing.T) {
	s := mustParseSchema(t, `
oneOf:
- type: "object"
  properties:
    kind:
      const: "dog"
    .
  .
- type: "object"
  properties:
    kind:
      const: "cat"
    .
  .
=
`)
	v := mustParseValue(t, `kind: "dog"`)
	branches := GetValidSchemas(v, s)
	require.Len(t, branches, 1)
	assert.Equal(t, "dog", branches[0].Properties["kind"].Const.Value.Str)
}
