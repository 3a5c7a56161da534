package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRefLocalJSONPointer(t *testing.T) {
	s := mustParseSchema(t, `
'$defs':
  positiveInt:
    type: "integer"
    minimum: 1
  .
.
properties:
  age:
    '$ref': "#/$defs/positiveInt"
  .
.
`)
	ageSchema := s.Properties["age"]
	require.NotNil(t, ageSchema)
	require.NotNil(t, ageSchema.ResolvedRef)
	assert.Equal(t, []string{"integer"}, ageSchema.ResolvedRef.Type)
}

func TestResolveRefRootAnchor(t *testing.T) {
	s := mustParseSchema(t, `
properties:
  self:
    '$ref': "#"
  .
.
`)
	selfSchema := s.Properties["self"]
	require.NotNil(t, selfSchema.ResolvedRef)
	assert.Same(t, s, selfSchema.ResolvedRef)
}

func TestResolveRefUnresolvedLeftNil(t *testing.T) {
	s := mustParseSchema(t, `
properties:
  x:
    '$ref': "#/$defs/missing"
  .
.
`)
	assert.Nil(t, s.Properties["x"].ResolvedRef)
}

func TestMetaSchemaSeeded(t *testing.T) {
	c := NewCompiler()
	found, ok := c.getSchema(draft07MetaSchemaURI)
	require.True(t, ok)
	assert.NotNil(t, found)
}
