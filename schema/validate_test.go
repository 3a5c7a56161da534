package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kson "github.com/ksonlang/kson-go"
)

func mustParseSchema(t *testing.T, src string) *Schema {
	t.Helper()
	doc := kson.Parse(src, kson.DefaultParseConfig())
	require.Empty(t, doc.Diagnostics)
	s, err := ParseSchema(doc.Value, nil)
	require.NoError(t, err)
	return s
}

func mustParseValue(t *testing.T, src string) *kson.Value {
	t.Helper()
	doc := kson.Parse(src, kson.DefaultParseConfig())
	require.Empty(t, doc.Diagnostics)
	return doc.Value
}

func TestValidateTypeMismatch(t *testing.T) {
	s := mustParseSchema(t, `type: "string"`)
	v := mustParseValue(t, "42")
	res := Validate(v, s)
	assert.False(t, res.Valid)
	assert.Equal(t, "type", res.Errors[0].Keyword)
}

func TestValidateIntegerSatisfiesNumber(t *testing.T) {
	s := mustParseSchema(t, `type: "number"`)
	v := mustParseValue(t, "7")
	res := Validate(v, s)
	assert.True(t, res.Valid)
}

func TestValidateRequiredProperty(t *testing.T) {
	s := mustParseSchema(t, `
type: "object"
required: [name]
`)
	v := mustParseValue(t, `age: 1`)
	res := Validate(v, s)
	require.False(t, res.Valid)
	assert.Equal(t, "required", res.Errors[0].Keyword)
}

func TestValidatePatternProperties(t *testing.T) {
	s := mustParseSchema(t, `
type: "object"
patternProperties:
  '^S_':
    type: "string"
  .
.
`)
	v := mustParseValue(t, `S_name: "x"`)
	res := Validate(v, s)
	assert.True(t, res.Valid)

	bad := mustParseValue(t, `S_name: 5`)
	res2 := Validate(bad, s)
	assert.False(t, res2.Valid)
}

func TestValidateEnum(t *testing.T) {
	s := mustParseSchema(t, `enum: [a, b, c]`)
	assert.True(t, Validate(mustParseValue(t, `"a"`), s).Valid)
	assert.False(t, Validate(mustParseValue(t, `"z"`), s).Valid)
}

func TestValidateArrayTuple(t *testing.T) {
	s := mustParseSchema(t, `
items: [{type: "string"}, {type: "number"}]
`)
	v := mustParseValue(t, `["x", 1]`)
	assert.True(t, Validate(v, s).Valid)

	bad := mustParseValue(t, `["x", "y"]`)
	assert.False(t, Validate(bad, s).Valid)
}

func TestValidateUniqueItems(t *testing.T) {
	s := mustParseSchema(t, `uniqueItems: true`)
	v := mustParseValue(t, `[1, 2, 2]`)
	res := Validate(v, s)
	assert.False(t, res.Valid)
}

func TestValidateNumericKeywords(t *testing.T) {
	s := mustParseSchema(t, `
minimum: 0
maximum: 10
multipleOf: 2
`)
	assert.True(t, Validate(mustParseValue(t, "4"), s).Valid)
	assert.False(t, Validate(mustParseValue(t, "5"), s).Valid)
	assert.False(t, Validate(mustParseValue(t, "-2"), s).Valid)
}
