package schema

import (
	"regexp"
	"sync"

	"github.com/ksonlang/kson-go"
)

// SchemaMap is an ordered-by-nothing keyword map used for
// "properties"/"patternProperties".
type SchemaMap map[string]*Schema

// ConstValue wraps a const keyword's literal instance for equality testing.
type ConstValue struct {
	Value *kson.Value
}

// Schema is a draft-07 JSON Schema node: no $dynamicRef/$dynamicAnchor, no
// unevaluatedItems/unevaluatedProperties, and Items/AdditionalItems use
// draft-07's tuple-or-single-schema shape instead of 2020-12's
// prefixItems+items split (draft-07 predates prefixItems entirely).
type Schema struct {
	compiler *Compiler
	parent   *Schema
	uri      string
	baseURI  string
	anchors  map[string]*Schema

	compiledPattern *regexp.Regexp

	// Boolean schemas ("true"/"false" as a whole schema body).
	Boolean *bool

	ID     string
	Schema string
	Ref    string

	ResolvedRef *Schema

	Defs map[string]*Schema // $defs (draft-07 compatibility: "definitions" is accepted as an alias)

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	If   *Schema
	Then *Schema
	Else *Schema

	// Items is either a single schema (applies to every element) or, when
	// ItemsTuple is non-nil, a positional tuple; AdditionalItems governs
	// elements beyond the tuple length (draft-07 "items").
	Items           *Schema
	ItemsTuple      []*Schema
	AdditionalItems *Schema
	Contains        *Schema

	Properties           SchemaMap
	PatternProperties    SchemaMap
	AdditionalProperties *Schema
	PropertyNames        *Schema

	Type  []string
	Enum  []*kson.Value
	Const *ConstValue

	MultipleOf       *float64
	Maximum          *float64
	ExclusiveMaximum *float64
	Minimum          *float64
	ExclusiveMinimum *float64

	MaxLength *int
	MinLength *int
	Pattern   *string
	Format    *string

	MaxItems    *int
	MinItems    *int
	UniqueItems bool

	MaxProperties     *int
	MinProperties     *int
	Required          []string
	DependentRequired map[string][]string

	Title       *string
	Description *string
	Default     *kson.Value

	Extra map[string]*kson.Value
}

// Compiler caches compiled schemas by URI, guarded by a RWMutex. This is the
// one piece of cross-call mutable state the otherwise pure-function
// validation core allows.
type Compiler struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
	idIndex map[string]*Schema
}

// NewCompiler returns a Compiler pre-seeded with the embedded draft-07
// meta-schema so "$ref": "http://json-schema.org/draft-07/schema#" resolves
// without a network fetch (network $ref retrieval is an explicit Non-goal).
func NewCompiler() *Compiler {
	c := &Compiler{schemas: map[string]*Schema{}, idIndex: map[string]*Schema{}}
	c.seedMetaSchema()
	return c
}

func (c *Compiler) getSchema(uri string) (*Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.schemas[uri]
	return s, ok
}

func (c *Compiler) putSchema(uri string, s *Schema) {
	if uri == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schemas[uri] = s
}

func (c *Compiler) putID(uri string, s *Schema) {
	if uri == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idIndex[uri] = s
}

func (c *Compiler) lookupID(uri string) (*Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.idIndex[uri]
	return s, ok
}

// getRootSchema walks to the outermost ancestor.
func (s *Schema) getRootSchema() *Schema {
	cur := s
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}
