package schema

import "github.com/ksonlang/kson-go"

// draft07MetaSchemaURI is the canonical URI draft-07 documents declare via
// "$schema" and the URI this package's embedded meta-schema is registered
// under so $ref resolution never needs network access (network $ref
// retrieval is an explicit Non-goal).
const draft07MetaSchemaURI = "http://json-schema.org/draft-07/schema#"

// draft07MetaSchemaKSON is the draft-07 meta-schema expressed in KSON. It is
// an immutable package-level constant, authored directly rather than
// translated from the official JSON text, since KSON's brace-free object
// form reads naturally for a keyword-heavy document like this one.
const draft07MetaSchemaKSON = `
'$id': "http://json-schema.org/draft-07/schema#"
'$schema': "http://json-schema.org/draft-07/schema#"
title: "Core schema meta-schema"
type: [ "object", "boolean" ]
properties:
  '$id':
    type: "string"
    format: "uri-reference"
  .
  '$schema':
    type: "string"
    format: "uri"
  .
  '$ref':
    type: "string"
    format: "uri-reference"
  .
  title:
    type: "string"
  .
  description:
    type: "string"
  .
  default: true
  examples:
    type: "array"
    items: true
  .
  multipleOf:
    type: "number"
    exclusiveMinimum: 0
  .
  maximum:
    type: "number"
  .
  exclusiveMaximum:
    type: "number"
  .
  minimum:
    type: "number"
  .
  exclusiveMinimum:
    type: "number"
  .
  maxLength:
    type: "integer"
    minimum: 0
  .
  minLength:
    type: "integer"
    minimum: 0
  .
  pattern:
    type: "string"
    format: "regex"
  .
  items: true
  additionalItems: true
  maxItems:
    type: "integer"
    minimum: 0
  .
  minItems:
    type: "integer"
    minimum: 0
  .
  uniqueItems:
    type: "boolean"
    default: false
  .
  contains: true
  maxProperties:
    type: "integer"
    minimum: 0
  .
  minProperties:
    type: "integer"
    minimum: 0
  .
  required:
    type: "array"
    items:
      type: "string"
    .
  .
  additionalProperties: true
  definitions:
    type: "object"
  .
  properties:
    type: "object"
  .
  patternProperties:
    type: "object"
  .
  dependentRequired:
    type: "object"
  .
  propertyNames: true
  const: true
  enum:
    type: "array"
    minItems: 1
  .
  type: true
  format:
    type: "string"
  .
  allOf:
    type: "array"
    items: true
  .
  anyOf:
    type: "array"
    items: true
  .
  oneOf:
    type: "array"
    items: true
  .
  not: true
  if: true
  then: true
  else: true
.
`

// seedMetaSchema parses the embedded draft-07 meta-schema and registers it
// under its own $id so $ref: "http://json-schema.org/draft-07/schema#"
// resolves locally.
func (c *Compiler) seedMetaSchema() {
	doc := kson.Parse(draft07MetaSchemaKSON, kson.DefaultParseConfig())
	if doc.Value == nil {
		return
	}
	s, err := buildSchema(doc.Value, c, nil, "")
	if err != nil {
		return
	}
	c.putSchema(draft07MetaSchemaURI, s)
	c.putID(draft07MetaSchemaURI, s)
	indexIDs(s, c)
}
