package schema

import (
	"fmt"

	"github.com/ksonlang/kson-go"
)

// validateCombinators applies allOf/anyOf/oneOf/not/if-then-else. Every
// allOf branch adds an EvaluationResult.Details entry; anyOf and oneOf add
// their branch details only when they fail; not adds none; if/then/else
// adds the detail of the then or else branch it applies.
func validateCombinators(v *kson.Value, s *Schema, r *EvaluationResult, evalPath, schemaLoc, instLoc string) {
	for i, sub := range s.AllOf {
		detail := validateAt(v, sub, fmt.Sprintf("%s/allOf/%d", evalPath, i), schemaLoc, instLoc)
		r.addDetail(detail)
	}

	if len(s.AnyOf) > 0 {
		matched := false
		var details []*EvaluationResult
		for i, sub := range s.AnyOf {
			detail := validateAt(v, sub, fmt.Sprintf("%s/anyOf/%d", evalPath, i), schemaLoc, instLoc)
			details = append(details, detail)
			if detail.Valid {
				matched = true
			}
		}
		if !matched {
			r.fail("anyOf", "value does not match any schema in anyOf", nil)
			for _, d := range details {
				r.addDetail(d)
			}
		}
	}

	if len(s.OneOf) > 0 {
		matchCount := 0
		var details []*EvaluationResult
		for i, sub := range s.OneOf {
			detail := validateAt(v, sub, fmt.Sprintf("%s/oneOf/%d", evalPath, i), schemaLoc, instLoc)
			details = append(details, detail)
			if detail.Valid {
				matchCount++
			}
		}
		if matchCount != 1 {
			r.fail("oneOf", fmt.Sprintf("value matches %d schemas in oneOf, expected exactly 1", matchCount), nil)
			for _, d := range details {
				r.addDetail(d)
			}
		}
	}

	if s.Not != nil {
		if Validate(v, s.Not).Valid {
			r.fail("not", "value matches the schema under not", nil)
		}
	}

	if s.If != nil {
		if Validate(v, s.If).Valid {
			if s.Then != nil {
				r.addDetail(validateAt(v, s.Then, evalPath+"/then", schemaLoc, instLoc))
			}
		} else if s.Else != nil {
			r.addDetail(validateAt(v, s.Else, evalPath+"/else", schemaLoc, instLoc))
		}
	}
}
