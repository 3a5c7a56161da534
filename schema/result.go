// Package schema implements draft-07 JSON Schema construction, validation,
// and the document-aware IDE services (completion, hover, jump-to-definition,
// location lookup) layered on top of it.
package schema

import (
	"fmt"
	"strings"

	"github.com/ksonlang/kson-go"
)

// EvaluationError describes a single failed keyword check. No locale
// parameter is carried — see DESIGN.md.
type EvaluationError struct {
	Keyword string
	Message string
	Params  map[string]interface{}
}

func newEvaluationError(keyword, message string, params map[string]interface{}) *EvaluationError {
	return &EvaluationError{Keyword: keyword, Message: message, Params: params}
}

func (e *EvaluationError) Error() string {
	msg := e.Message
	for k, v := range e.Params {
		msg = strings.ReplaceAll(msg, "{"+k+"}", fmt.Sprint(v))
	}
	return msg
}

// EvaluationResult is the complete result of validating a value against a
// schema, structured as a tree with no localization path.
type EvaluationResult struct {
	Valid            bool
	EvaluationPath   string
	SchemaLocation   string
	InstanceLocation string
	Range            kson.Range
	Errors           []*EvaluationError
	Details          []*EvaluationResult
}

func newResult(evalPath, schemaLoc, instLoc string, rng kson.Range) *EvaluationResult {
	return &EvaluationResult{Valid: true, EvaluationPath: evalPath, SchemaLocation: schemaLoc, InstanceLocation: instLoc, Range: rng}
}

func (r *EvaluationResult) fail(keyword, message string, params map[string]interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, newEvaluationError(keyword, message, params))
}

func (r *EvaluationResult) addDetail(d *EvaluationResult) {
	r.Details = append(r.Details, d)
	if !d.Valid {
		r.Valid = false
	}
}

// Flatten walks the result tree and returns every failing node's errors
// paired with their instance location.
func (r *EvaluationResult) Flatten() []*EvaluationResult {
	var out []*EvaluationResult
	if len(r.Errors) > 0 {
		out = append(out, r)
	}
	for _, d := range r.Details {
		out = append(out, d.Flatten()...)
	}
	return out
}

// ToDiagnostics renders a failed EvaluationResult tree into the document's
// diagnostic sink so validation failures surface through the same
// "errors are data" channel as lexical and syntactic problems.
func ToDiagnostics(result *EvaluationResult) []kson.Diagnostic {
	var out []kson.Diagnostic
	for _, r := range result.Flatten() {
		for _, e := range r.Errors {
			out = append(out, kson.Diagnostic{
				Kind:    kson.KindSchemaValidationError,
				Message: fmt.Sprintf("%s: %s", r.InstanceLocation, e.Error()),
				Range:   r.Range,
			})
		}
	}
	return out
}
