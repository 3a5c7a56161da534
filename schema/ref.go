package schema

import (
	"strconv"
	"strings"

	jsonpointer "github.com/ksonlang/kson-go/jsonpointer"
)

// indexIDs performs the depth-first $id walk that seeds the compiler's
// ID index, so resolveRef can find any subschema's $id without re-walking
// the tree on every lookup.
func indexIDs(s *Schema, compiler *Compiler) {
	if s == nil {
		return
	}
	if s.uri != "" {
		compiler.putID(s.uri, s)
	}
	walkSubschemas(s, func(child *Schema) { indexIDs(child, compiler) })
}

// walkSubschemas visits every direct subschema field exactly once.
func walkSubschemas(s *Schema, visit func(*Schema)) {
	if s == nil {
		return
	}
	for _, c := range s.Defs {
		visit(c)
	}
	for _, c := range s.AllOf {
		visit(c)
	}
	for _, c := range s.AnyOf {
		visit(c)
	}
	for _, c := range s.OneOf {
		visit(c)
	}
	if s.Not != nil {
		visit(s.Not)
	}
	if s.If != nil {
		visit(s.If)
	}
	if s.Then != nil {
		visit(s.Then)
	}
	if s.Else != nil {
		visit(s.Else)
	}
	if s.Items != nil {
		visit(s.Items)
	}
	for _, c := range s.ItemsTuple {
		visit(c)
	}
	if s.AdditionalItems != nil {
		visit(s.AdditionalItems)
	}
	if s.Contains != nil {
		visit(s.Contains)
	}
	for _, c := range s.Properties {
		visit(c)
	}
	for _, c := range s.PatternProperties {
		visit(c)
	}
	if s.AdditionalProperties != nil {
		visit(s.AdditionalProperties)
	}
	if s.PropertyNames != nil {
		visit(s.PropertyNames)
	}
}

// resolveRefs resolves every $ref in the tree against its base URI, the
// compiler's id index, and JSON-Pointer navigation within the document:
// local anchor lookup, then id-indexed lookup, then pointer descent.
// Unresolved references are left nil rather than erroring — validation
// treats an unresolved $ref as always-valid rather than failing the caller
// on a missing definition.
func resolveRefs(s *Schema) {
	if s == nil {
		return
	}
	if s.Ref != "" {
		s.ResolvedRef, _ = resolveRef(s, s.Ref)
	}
	walkSubschemas(s, resolveRefs)
}

func resolveRef(s *Schema, ref string) (*Schema, error) {
	if ref == "#" {
		return s.getRootSchema(), nil
	}
	if strings.HasPrefix(ref, "#/") {
		return resolveJSONPointer(s.getRootSchema(), ref[1:])
	}
	if strings.HasPrefix(ref, "#") {
		return resolveAnchor(s, ref[1:])
	}

	base, anchor := splitRef(ref)
	full := base
	if !isAbsoluteURI(full) && s.baseURI != "" {
		full = resolveURIRef(s.baseURI, base)
	}
	if full == "" {
		full = s.getRootSchema().uri
	}

	var target *Schema
	if resolved, ok := s.compiler.lookupID(full); ok {
		target = resolved
	} else if resolved, ok := s.compiler.getSchema(full); ok {
		target = resolved
	} else if full == s.getRootSchema().uri || full == "" {
		target = s.getRootSchema()
	}
	if target == nil {
		return nil, ErrRefNotFound
	}
	if anchor == "" {
		return target, nil
	}
	if strings.HasPrefix(anchor, "/") {
		return resolveJSONPointer(target, anchor)
	}
	return resolveAnchor(target, anchor)
}

func resolveAnchor(s *Schema, name string) (*Schema, error) {
	if s.anchors != nil {
		if found, ok := s.anchors[name]; ok {
			return found, nil
		}
	}
	if s.parent != nil {
		return resolveAnchor(s.parent, name)
	}
	return nil, ErrRefNotFound
}

// resolveJSONPointer descends a schema tree by JSON-Pointer segments,
// following the draft-07 keyword shapes the pointer can step through.
func resolveJSONPointer(root *Schema, pointer string) (*Schema, error) {
	if pointer == "" || pointer == "/" {
		return root, nil
	}
	segments := jsonpointer.Parse(pointer)
	cur := root
	prev := ""
	for i, seg := range segments {
		next, ok := stepSchema(cur, prev, seg)
		if !ok {
			if i == len(segments)-1 {
				return nil, ErrJSONPointerSegmentNotFound
			}
			prev = seg
			continue
		}
		cur = next
		prev = seg
	}
	return cur, nil
}

func stepSchema(cur *Schema, prevSegment, segment string) (*Schema, bool) {
	switch prevSegment {
	case "properties":
		if s, ok := cur.Properties[segment]; ok {
			return s, true
		}
	case "patternProperties":
		if s, ok := cur.PatternProperties[segment]; ok {
			return s, true
		}
	case "$defs", "definitions":
		if s, ok := cur.Defs[segment]; ok {
			return s, true
		}
	case "items":
		if cur.Items != nil {
			return cur.Items, true
		}
		if idx, err := strconv.Atoi(segment); err == nil && idx < len(cur.ItemsTuple) {
			return cur.ItemsTuple[idx], true
		}
	case "allOf":
		if idx, err := strconv.Atoi(segment); err == nil && idx < len(cur.AllOf) {
			return cur.AllOf[idx], true
		}
	case "anyOf":
		if idx, err := strconv.Atoi(segment); err == nil && idx < len(cur.AnyOf) {
			return cur.AnyOf[idx], true
		}
	case "oneOf":
		if idx, err := strconv.Atoi(segment); err == nil && idx < len(cur.OneOf) {
			return cur.OneOf[idx], true
		}
	case "not":
		if cur.Not != nil {
			return cur.Not, true
		}
	case "additionalProperties":
		if cur.AdditionalProperties != nil {
			return cur.AdditionalProperties, true
		}
	case "contains":
		if cur.Contains != nil {
			return cur.Contains, true
		}
	}
	return nil, false
}
