package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCompletionsAtLocationSuggestsMissingProperties(t *testing.T) {
	s := mustParseSchema(t, `
type: "object"
properties:
  name:
    type: "string"
  .
  age:
    type: "number"
  .
.
`)
	v := mustParseValue(t, `name: "bob"`)
	items := GetCompletionsAtLocation(v, s, 0, 0)
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Contains(t, labels, "age")
	assert.NotContains(t, labels, "name", "already-present property is not suggested again")
}

func TestGetCompletionsAtLocationOneOfDiscriminator(t *testing.T) {
	s := mustParseSchema(t, `
oneOf:
- type: "object"
  properties:
    kind:
      const: "dog"
    .
    breed:
      type: "string"
    .
  .
- type: "object"
  properties:
    kind:
      const: "cat"
    .
    lives:
      type: "number"
    .
  .
=
`)
	v := mustParseValue(t, `kind: "dog"`)
	items := GetCompletionsAtLocation(v, s, 0, 0)
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Contains(t, labels, "breed")
	assert.NotContains(t, labels, "lives", "filtered out by the kind discriminator already typed")
}

func TestGetSchemaInfoAtLocationHover(t *testing.T) {
	s := mustParseSchema(t, `
type: "object"
properties:
  name:
    type: "string"
    title: "Name"
    description: "The user's name"
  .
.
`)
	v := mustParseValue(t, `name: "bob"`)
	info, ok := GetSchemaInfoAtLocation(v, s, 0, 6)
	require.True(t, ok)
	assert.Equal(t, "Name", info.Title)
	md := info.Markdown()
	assert.Contains(t, md, "Name")
	assert.Contains(t, md, "string")
}

func TestGetSchemaLocationAtLocation(t *testing.T) {
	s := mustParseSchema(t, `
type: "object"
properties:
  name:
    type: "string"
  .
.
`)
	v := mustParseValue(t, `name: "bob"`)
	_, ok := GetSchemaLocationAtLocation(v, s, 0, 6)
	assert.True(t, ok)
}
