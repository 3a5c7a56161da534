package schema

import (
	"fmt"
	"sort"

	"github.com/ksonlang/kson-go"
)

// Validate checks a value tree against a schema, returning the full
// evaluation tree. It dispatches keyword-by-keyword, covering draft-07's
// keyword set.
func Validate(v *kson.Value, s *Schema) *EvaluationResult {
	return validateAt(v, s, "#", schemaLocationOf(s), "")
}

func schemaLocationOf(s *Schema) string {
	if s == nil {
		return "#"
	}
	if s.uri != "" {
		return s.uri
	}
	return "#"
}

func validateAt(v *kson.Value, s *Schema, evalPath, schemaLoc, instLoc string) *EvaluationResult {
	rng := kson.Range{}
	if v != nil {
		rng = v.Location.Range
	}
	r := newResult(evalPath, schemaLoc, instanceLocationLabel(instLoc), rng)
	if s == nil {
		return r
	}
	if s.Boolean != nil {
		if !*s.Boolean {
			r.fail("boolean", "schema is the boolean literal false", nil)
		}
		return r
	}
	if v == nil {
		return r
	}

	if s.Ref != "" {
		if s.ResolvedRef != nil {
			detail := validateAt(v, s.ResolvedRef, evalPath+"/$ref", schemaLocationOf(s.ResolvedRef), instLoc)
			r.addDetail(detail)
		}
		return r
	}

	validateType(v, s, r)
	validateEnum(v, s, r)
	validateConst(v, s, r)

	switch v.Kind {
	case kson.ValueString:
		validateStringKeywords(v, s, r)
	case kson.ValueNumber:
		validateNumberKeywords(v, s, r)
	case kson.ValueList:
		validateArrayKeywords(v, s, r, evalPath, schemaLoc, instLoc)
	case kson.ValueObject:
		validateObjectKeywords(v, s, r, evalPath, schemaLoc, instLoc)
	}

	validateCombinators(v, s, r, evalPath, schemaLoc, instLoc)
	return r
}

func instanceLocationLabel(path string) string {
	if path == "" {
		return "#"
	}
	return path
}

func validateType(v *kson.Value, s *Schema, r *EvaluationResult) {
	if len(s.Type) == 0 {
		return
	}
	actual := jsonTypeOf(v)
	for _, t := range s.Type {
		if t == actual {
			return
		}
		if t == "number" && actual == "integer" {
			return
		}
	}
	r.fail("type", fmt.Sprintf("expected type %v, got %s", s.Type, actual), map[string]interface{}{"expected": s.Type, "actual": actual})
}

func jsonTypeOf(v *kson.Value) string {
	switch v.Kind {
	case kson.ValueObject:
		return "object"
	case kson.ValueList:
		return "array"
	case kson.ValueString:
		return "string"
	case kson.ValueBool:
		return "boolean"
	case kson.ValueNull:
		return "null"
	case kson.ValueNumber:
		if v.Num.IsIntegral() {
			return "integer"
		}
		return "number"
	case kson.ValueEmbed:
		return "object"
	default:
		return "null"
	}
}

func validateEnum(v *kson.Value, s *Schema, r *EvaluationResult) {
	if len(s.Enum) == 0 {
		return
	}
	for _, e := range s.Enum {
		if valuesEqual(v, e) {
			return
		}
	}
	r.fail("enum", "value does not match any enum member", nil)
}

func validateConst(v *kson.Value, s *Schema, r *EvaluationResult) {
	if s.Const == nil {
		return
	}
	if !valuesEqual(v, s.Const.Value) {
		r.fail("const", "value does not equal the const value", nil)
	}
}

// valuesEqual implements numeric equality (IEEE-754-double projection,
// so an Integer and a Decimal with the same magnitude compare equal) and
// structural equality elsewhere.
func valuesEqual(a, b *kson.Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind == kson.ValueNumber && b.Kind == kson.ValueNumber {
		return a.Num.Equal(b.Num)
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case kson.ValueString:
		return a.Str == b.Str
	case kson.ValueBool:
		return a.Bool == b.Bool
	case kson.ValueNull:
		return true
	case kson.ValueList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !valuesEqual(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case kson.ValueObject:
		if len(a.Object.Members) != len(b.Object.Members) {
			return false
		}
		for _, m := range a.Object.Members {
			bv, ok := b.Object.Get(m.Key)
			if !ok || !valuesEqual(m.Value, bv) {
				return false
			}
		}
		return true
	}
	return false
}

func validateStringKeywords(v *kson.Value, s *Schema, r *EvaluationResult) {
	length := len([]rune(v.Str))
	if s.MinLength != nil && length < *s.MinLength {
		r.fail("minLength", fmt.Sprintf("string length %d is less than minLength %d", length, *s.MinLength), nil)
	}
	if s.MaxLength != nil && length > *s.MaxLength {
		r.fail("maxLength", fmt.Sprintf("string length %d exceeds maxLength %d", length, *s.MaxLength), nil)
	}
	if s.compiledPattern != nil && !s.compiledPattern.MatchString(v.Str) {
		r.fail("pattern", fmt.Sprintf("string does not match pattern %q", *s.Pattern), nil)
	}
}

func validateNumberKeywords(v *kson.Value, s *Schema, r *EvaluationResult) {
	n := v.Num.Float64()
	if s.MultipleOf != nil && *s.MultipleOf != 0 {
		q := n / *s.MultipleOf
		if q != float64(int64(q)) {
			r.fail("multipleOf", fmt.Sprintf("%v is not a multiple of %v", n, *s.MultipleOf), nil)
		}
	}
	if s.Maximum != nil && n > *s.Maximum {
		r.fail("maximum", fmt.Sprintf("%v exceeds maximum %v", n, *s.Maximum), nil)
	}
	if s.ExclusiveMaximum != nil && n >= *s.ExclusiveMaximum {
		r.fail("exclusiveMaximum", fmt.Sprintf("%v is not less than exclusiveMaximum %v", n, *s.ExclusiveMaximum), nil)
	}
	if s.Minimum != nil && n < *s.Minimum {
		r.fail("minimum", fmt.Sprintf("%v is less than minimum %v", n, *s.Minimum), nil)
	}
	if s.ExclusiveMinimum != nil && n <= *s.ExclusiveMinimum {
		r.fail("exclusiveMinimum", fmt.Sprintf("%v is not greater than exclusiveMinimum %v", n, *s.ExclusiveMinimum), nil)
	}
}

func validateArrayKeywords(v *kson.Value, s *Schema, r *EvaluationResult, evalPath, schemaLoc, instLoc string) {
	n := len(v.List)
	if s.MinItems != nil && n < *s.MinItems {
		r.fail("minItems", fmt.Sprintf("array has %d items, fewer than minItems %d", n, *s.MinItems), nil)
	}
	if s.MaxItems != nil && n > *s.MaxItems {
		r.fail("maxItems", fmt.Sprintf("array has %d items, more than maxItems %d", n, *s.MaxItems), nil)
	}
	if s.UniqueItems {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if valuesEqual(v.List[i], v.List[j]) {
					r.fail("uniqueItems", fmt.Sprintf("items %d and %d are equal", i, j), nil)
					break
				}
			}
		}
	}
	for i, e := range v.List {
		itemSchema := s.Items
		if s.ItemsTuple != nil {
			if i < len(s.ItemsTuple) {
				itemSchema = s.ItemsTuple[i]
			} else {
				itemSchema = s.AdditionalItems
			}
		}
		if itemSchema == nil {
			continue
		}
		childInst := fmt.Sprintf("%s/%d", instLoc, i)
		detail := validateAt(e, itemSchema, fmt.Sprintf("%s/items/%d", evalPath, i), schemaLoc, childInst)
		r.addDetail(detail)
	}
	if s.Contains != nil {
		found := false
		for _, e := range v.List {
			if Validate(e, s.Contains).Valid {
				found = true
				break
			}
		}
		if !found {
			r.fail("contains", "no array item matches the contains schema", nil)
		}
	}
}

func validateObjectKeywords(v *kson.Value, s *Schema, r *EvaluationResult, evalPath, schemaLoc, instLoc string) {
	n := len(v.Object.Members)
	if s.MinProperties != nil && n < *s.MinProperties {
		r.fail("minProperties", fmt.Sprintf("object has %d properties, fewer than minProperties %d", n, *s.MinProperties), nil)
	}
	if s.MaxProperties != nil && n > *s.MaxProperties {
		r.fail("maxProperties", fmt.Sprintf("object has %d properties, more than maxProperties %d", n, *s.MaxProperties), nil)
	}
	for _, req := range s.Required {
		if !v.Object.Has(req) {
			r.fail("required", fmt.Sprintf("missing required property %q", req), map[string]interface{}{"property": req})
		}
	}
	for prop, deps := range s.DependentRequired {
		if !v.Object.Has(prop) {
			continue
		}
		for _, dep := range deps {
			if !v.Object.Has(dep) {
				r.fail("dependentRequired", fmt.Sprintf("property %q requires %q", prop, dep), nil)
			}
		}
	}
	if s.PropertyNames != nil {
		for _, k := range v.Object.Keys() {
			nameVal := &kson.Value{Kind: kson.ValueString, Str: k}
			if res := Validate(nameVal, s.PropertyNames); !res.Valid {
				r.fail("propertyNames", fmt.Sprintf("property name %q is invalid", k), nil)
			}
		}
	}

	matchedByPattern := map[string]bool{}
	for _, m := range v.Object.Members {
		matched := false
		if childSchema, ok := s.Properties[m.Key]; ok {
			detail := validateAt(m.Value, childSchema, evalPath+"/properties/"+m.Key, schemaLoc, instLoc+"/"+m.Key)
			r.addDetail(detail)
			matched = true
		}
		patterns := sortedPatternKeys(s.PatternProperties)
		for _, pat := range patterns {
			childSchema := s.PatternProperties[pat]
			re := compileRegexp(pat)
			if re != nil && re.MatchString(m.Key) {
				detail := validateAt(m.Value, childSchema, evalPath+"/patternProperties/"+pat, schemaLoc, instLoc+"/"+m.Key)
				r.addDetail(detail)
				matched = true
				matchedByPattern[m.Key] = true
			}
		}
		if !matched && s.AdditionalProperties != nil {
			detail := validateAt(m.Value, s.AdditionalProperties, evalPath+"/additionalProperties", schemaLoc, instLoc+"/"+m.Key)
			r.addDetail(detail)
		}
	}
}

func sortedPatternKeys(m SchemaMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
