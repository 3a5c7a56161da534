package schema

import (
	"github.com/ksonlang/kson-go"
)

// ParseSchema builds a Schema tree from a parsed KSON value. Rather than
// unmarshaling JSON bytes via encoding, this walks an already-parsed
// kson.Value tree directly, since a
// KSON schema document is read through the same parser as any other KSON
// document (schemas are ordinary KSON data with a reserved vocabulary of
// keys).
func ParseSchema(v *kson.Value, compiler *Compiler) (*Schema, error) {
	if compiler == nil {
		compiler = NewCompiler()
	}
	s, err := buildSchema(v, compiler, nil, "")
	if err != nil {
		return nil, err
	}
	indexIDs(s, compiler)
	resolveRefs(s)
	return s, nil
}

func buildSchema(v *kson.Value, compiler *Compiler, parent *Schema, baseURI string) (*Schema, error) {
	if v == nil || v.Kind == kson.ValueNull {
		return &Schema{compiler: compiler, parent: parent, baseURI: baseURI}, nil
	}
	if v.Kind == kson.ValueBool {
		b := v.Bool
		return &Schema{compiler: compiler, parent: parent, baseURI: baseURI, Boolean: &b}, nil
	}
	if v.Kind != kson.ValueObject {
		return nil, ErrInvalidSchemaShape
	}

	obj := v.Object
	s := &Schema{compiler: compiler, parent: parent, baseURI: baseURI, anchors: map[string]*Schema{}}

	if id := getString(obj, "$id"); id != nil {
		s.ID = *id
		s.uri = resolveURIRef(baseURI, *id)
		if nb := baseURIOf(s.uri); nb != "" {
			s.baseURI = nb
		}
	} else {
		s.baseURI = baseURI
	}
	s.Schema = derefString(getString(obj, "$schema"))
	s.Ref = derefString(getString(obj, "$ref"))

	if defs, ok := obj.Get("$defs"); ok {
		s.Defs = buildSchemaMap(defs, compiler, s)
	} else if defs, ok := obj.Get("definitions"); ok {
		s.Defs = buildSchemaMap(defs, compiler, s)
	}

	s.AllOf = buildSchemaList(obj, "allOf", compiler, s)
	s.AnyOf = buildSchemaList(obj, "anyOf", compiler, s)
	s.OneOf = buildSchemaList(obj, "oneOf", compiler, s)
	if notV, ok := obj.Get("not"); ok {
		s.Not, _ = buildSchema(notV, compiler, s, s.baseURI)
	}
	if ifV, ok := obj.Get("if"); ok {
		s.If, _ = buildSchema(ifV, compiler, s, s.baseURI)
	}
	if thenV, ok := obj.Get("then"); ok {
		s.Then, _ = buildSchema(thenV, compiler, s, s.baseURI)
	}
	if elseV, ok := obj.Get("else"); ok {
		s.Else, _ = buildSchema(elseV, compiler, s, s.baseURI)
	}

	if itemsV, ok := obj.Get("items"); ok {
		if itemsV.Kind == kson.ValueList {
			for _, e := range itemsV.List {
				child, _ := buildSchema(e, compiler, s, s.baseURI)
				s.ItemsTuple = append(s.ItemsTuple, child)
			}
		} else {
			s.Items, _ = buildSchema(itemsV, compiler, s, s.baseURI)
		}
	}
	if aiV, ok := obj.Get("additionalItems"); ok {
		s.AdditionalItems, _ = buildSchema(aiV, compiler, s, s.baseURI)
	}
	if containsV, ok := obj.Get("contains"); ok {
		s.Contains, _ = buildSchema(containsV, compiler, s, s.baseURI)
	}

	if propsV, ok := obj.Get("properties"); ok {
		s.Properties = buildSchemaMap(propsV, compiler, s)
	}
	if ppV, ok := obj.Get("patternProperties"); ok {
		s.PatternProperties = buildSchemaMap(ppV, compiler, s)
	}
	if apV, ok := obj.Get("additionalProperties"); ok {
		s.AdditionalProperties, _ = buildSchema(apV, compiler, s, s.baseURI)
	}
	if pnV, ok := obj.Get("propertyNames"); ok {
		s.PropertyNames, _ = buildSchema(pnV, compiler, s, s.baseURI)
	}

	s.Type = getTypeList(obj)
	if enumV, ok := obj.Get("enum"); ok && enumV.Kind == kson.ValueList {
		s.Enum = enumV.List
	}
	if constV, ok := obj.Get("const"); ok {
		s.Const = &ConstValue{Value: constV}
	}

	s.MultipleOf = getFloat(obj, "multipleOf")
	s.Maximum = getFloat(obj, "maximum")
	s.ExclusiveMaximum = getFloat(obj, "exclusiveMaximum")
	s.Minimum = getFloat(obj, "minimum")
	s.ExclusiveMinimum = getFloat(obj, "exclusiveMinimum")

	s.MaxLength = getInt(obj, "maxLength")
	s.MinLength = getInt(obj, "minLength")
	s.Pattern = getString(obj, "pattern")
	s.Format = getString(obj, "format")
	if s.Pattern != nil {
		s.compiledPattern = compileRegexp(*s.Pattern)
	}

	s.MaxItems = getInt(obj, "maxItems")
	s.MinItems = getInt(obj, "minItems")
	s.UniqueItems = getBool(obj, "uniqueItems")

	s.MaxProperties = getInt(obj, "maxProperties")
	s.MinProperties = getInt(obj, "minProperties")
	s.Required = getStringList(obj, "required")
	s.DependentRequired = getStringListMap(obj, "dependentRequired")

	s.Title = getString(obj, "title")
	s.Description = getString(obj, "description")
	if def, ok := obj.Get("default"); ok {
		s.Default = def
	}

	s.Extra = map[string]*kson.Value{}
	for _, m := range obj.Members {
		if _, known := knownSchemaFields[m.Key]; !known {
			s.Extra[m.Key] = m.Value
		}
	}

	if s.uri != "" {
		compiler.putSchema(s.uri, s)
	}

	return s, nil
}

func buildSchemaMap(v *kson.Value, compiler *Compiler, parent *Schema) SchemaMap {
	if v == nil || v.Kind != kson.ValueObject {
		return nil
	}
	m := SchemaMap{}
	for _, member := range v.Object.Members {
		child, err := buildSchema(member.Value, compiler, parent, parent.baseURI)
		if err == nil {
			m[member.Key] = child
		}
	}
	return m
}

func buildSchemaList(obj *kson.ObjectValue, key string, compiler *Compiler, parent *Schema) []*Schema {
	v, ok := obj.Get(key)
	if !ok || v.Kind != kson.ValueList {
		return nil
	}
	out := make([]*Schema, 0, len(v.List))
	for _, e := range v.List {
		child, err := buildSchema(e, compiler, parent, parent.baseURI)
		if err == nil {
			out = append(out, child)
		}
	}
	return out
}

func getTypeList(obj *kson.ObjectValue) []string {
	v, ok := obj.Get("type")
	if !ok {
		return nil
	}
	if v.Kind == kson.ValueString {
		return []string{v.Str}
	}
	if v.Kind == kson.ValueList {
		var out []string
		for _, e := range v.List {
			if e.Kind == kson.ValueString {
				out = append(out, e.Str)
			}
		}
		return out
	}
	return nil
}

func getString(obj *kson.ObjectValue, key string) *string {
	v, ok := obj.Get(key)
	if !ok || v.Kind != kson.ValueString {
		return nil
	}
	s := v.Str
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func getFloat(obj *kson.ObjectValue, key string) *float64 {
	v, ok := obj.Get(key)
	if !ok || v.Kind != kson.ValueNumber {
		return nil
	}
	f := v.Num.Float64()
	return &f
}

func getInt(obj *kson.ObjectValue, key string) *int {
	f := getFloat(obj, key)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}

func getBool(obj *kson.ObjectValue, key string) bool {
	v, ok := obj.Get(key)
	return ok && v.Kind == kson.ValueBool && v.Bool
}

func getStringList(obj *kson.ObjectValue, key string) []string {
	v, ok := obj.Get(key)
	if !ok || v.Kind != kson.ValueList {
		return nil
	}
	var out []string
	for _, e := range v.List {
		if e.Kind == kson.ValueString {
			out = append(out, e.Str)
		}
	}
	return out
}

func getStringListMap(obj *kson.ObjectValue, key string) map[string][]string {
	v, ok := obj.Get(key)
	if !ok || v.Kind != kson.ValueObject {
		return nil
	}
	out := map[string][]string{}
	for _, m := range v.Object.Members {
		if m.Value.Kind == kson.ValueList {
			var deps []string
			for _, e := range m.Value.List {
				if e.Kind == kson.ValueString {
					deps = append(deps, e.Str)
				}
			}
			out[m.Key] = deps
		}
	}
	return out
}

// knownSchemaFields is the filter used to collect extension fields,
// covering the draft-07 keyword set this package models.
var knownSchemaFields = map[string]struct{}{
	"$id": {}, "$schema": {}, "$ref": {}, "$comment": {},
	"$defs": {}, "definitions": {},
	"allOf": {}, "anyOf": {}, "oneOf": {}, "not": {},
	"if": {}, "then": {}, "else": {},
	"items": {}, "additionalItems": {}, "contains": {},
	"properties": {}, "patternProperties": {}, "additionalProperties": {}, "propertyNames": {},
	"type": {}, "enum": {}, "const": {},
	"multipleOf": {}, "maximum": {}, "exclusiveMaximum": {}, "minimum": {}, "exclusiveMinimum": {},
	"maxLength": {}, "minLength": {}, "pattern": {}, "format": {},
	"maxItems": {}, "minItems": {}, "uniqueItems": {},
	"maxProperties": {}, "minProperties": {}, "required": {}, "dependentRequired": {},
	"title": {}, "description": {}, "default": {}, "examples": {},
}
