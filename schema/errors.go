package schema

import "errors"

// Sentinel errors covering the subset this package's keyword surface
// needs.
var (
	ErrInvalidSchemaShape        = errors.New("schema: value is not an object or boolean")
	ErrRefNotFound               = errors.New("schema: $ref did not resolve to a schema")
	ErrJSONPointerSegmentNotFound = errors.New("schema: json pointer segment not found")
	ErrNilSchema                 = errors.New("schema: nil schema")
)
