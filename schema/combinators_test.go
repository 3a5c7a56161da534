package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOneOfExactlyOneMatch(t *testing.T) {
	s := mustParseSchema(t, `
oneOf: [{type: "string"}, {type: "number"}]
`)
	assert.True(t, Validate(mustParseValue(t, `"x"`), s).Valid)
	assert.True(t, Validate(mustParseValue(t, `1`), s).Valid)
	assert.False(t, Validate(mustParseValue(t, `true`), s).Valid)
}

func TestValidateAnyOfAtLeastOneMatch(t *testing.T) {
	s := mustParseSchema(t, `
anyOf: [{type: "string"}, {minimum: 10}]
`)
	assert.True(t, Validate(mustParseValue(t, `"x"`), s).Valid, "matches the string branch")
	assert.True(t, Validate(mustParseValue(t, `15`), s).Valid, "matches the minimum branch")
	assert.False(t, Validate(mustParseValue(t, `5`), s).Valid, "matches neither branch")
}

func TestValidateAllOfEveryBranch(t *testing.T) {
	s := mustParseSchema(t, `
allOf: [{minimum: 0}, {maximum: 10}]
`)
	assert.True(t, Validate(mustParseValue(t, `5`), s).Valid)
	assert.False(t, Validate(mustParseValue(t, `20`), s).Valid)
}

func TestValidateNot(t *testing.T) {
	s := mustParseSchema(t, `not: {type: "string"}`)
	assert.True(t, Validate(mustParseValue(t, `1`), s).Valid)
	assert.False(t, Validate(mustParseValue(t, `"x"`), s).Valid)
}

func TestValidateIfThenElse(t *testing.T) {
	s := mustParseSchema(t, `
if: {minimum: 10}
then: {multipleOf: 10}
else: {multipleOf: 3}
`)
	assert.True(t, Validate(mustParseValue(t, "20"), s).Valid)
	assert.False(t, Validate(mustParseValue(t, "15"), s).Valid)
	assert.True(t, Validate(mustParseValue(t, "9"), s).Valid)
}
