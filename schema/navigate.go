package schema

import (
	"strconv"

	"github.com/ksonlang/kson-go"
)

// NavigateByTokens walks a value tree by JSON-Pointer-plus tokens. A
// numeric token navigates a list by index; any other token navigates an
// object by key. Glob tokens match the first member/element whose
// key/index satisfies the pattern.
func NavigateByTokens(root *kson.Value, tokens []string) (*kson.Value, bool) {
	cur := root
	for _, tok := range tokens {
		if cur == nil {
			return nil, false
		}
		switch cur.Kind {
		case kson.ValueObject:
			next, ok := stepObject(cur.Object, tok)
			if !ok {
				return nil, false
			}
			cur = next
		case kson.ValueList:
			idx, err := strconv.Atoi(tok)
			if err != nil {
				idx = -1
				for i := range cur.List {
					if jsonpointerGlobMatch(tok, strconv.Itoa(i)) {
						idx = i
						break
					}
				}
			}
			if idx < 0 || idx >= len(cur.List) {
				return nil, false
			}
			cur = cur.List[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

func stepObject(o *kson.ObjectValue, tok string) (*kson.Value, bool) {
	if v, ok := o.Get(tok); ok {
		return v, true
	}
	for _, k := range o.Keys() {
		if jsonpointerGlobMatch(tok, k) {
			v, _ := o.Get(k)
			return v, true
		}
	}
	return nil, false
}

// jsonpointerGlobMatch is a byte-wise glob matcher in the spirit of
// kson/jsonpointer.MatchToken: '*' matches any run of characters, '?'
// matches exactly one, and every other byte matches itself.
func jsonpointerGlobMatch(pattern, literal string) bool {
	if pattern == literal {
		return true
	}
	pi, li := 0, 0
	var starIdx, match int = -1, 0
	for li < len(literal) {
		if pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == literal[li]) {
			pi++
			li++
		} else if pi < len(pattern) && pattern[pi] == '*' {
			starIdx = pi
			match = li
			pi++
		} else if starIdx != -1 {
			pi = starIdx + 1
			match++
			li = match
		} else {
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

// FindAtCoordinate locates the smallest value node whose range contains the
// given line/column, returning the path of tokens from the root. Ties
// between an object's key and its value at the same position resolve to
// the value, matching the Open Question decision recorded in DESIGN.md.
func FindAtCoordinate(root *kson.Value, line, col int) (*kson.Value, []string, bool) {
	if root == nil || !rangeContains(root.Location.Range, line, col) {
		return nil, nil, false
	}
	return findAt(root, line, col, nil)
}

func findAt(v *kson.Value, line, col int, path []string) (*kson.Value, []string, bool) {
	switch v.Kind {
	case kson.ValueObject:
		for _, m := range v.Object.Members {
			if rangeContains(m.Value.Location.Range, line, col) {
				return findAt(m.Value, line, col, append(append([]string{}, path...), m.Key))
			}
		}
	case kson.ValueList:
		for i, e := range v.List {
			if rangeContains(e.Location.Range, line, col) {
				return findAt(e, line, col, append(append([]string{}, path...), strconv.Itoa(i)))
			}
		}
	}
	return v, path, true
}

func rangeContains(r kson.Range, line, col int) bool {
	if line < r.StartLine || line > r.EndLine {
		return false
	}
	if line == r.StartLine && col < r.StartCol {
		return false
	}
	if line == r.EndLine && col > r.EndCol {
		return false
	}
	return true
}

// BuildPathToPosition returns the property-key/index path from the document
// root to the smallest node at (line, col). When includePropertyKeys is
// false, object traversal steps are omitted and only list indices remain —
// used by callers that want structural depth without key names.
func BuildPathToPosition(root *kson.Value, line, col int, includePropertyKeys bool) []string {
	_, path, ok := FindAtCoordinate(root, line, col)
	if !ok {
		return nil
	}
	if includePropertyKeys {
		return path
	}
	var out []string
	for _, tok := range path {
		if _, err := strconv.Atoi(tok); err == nil {
			out = append(out, tok)
		}
	}
	return out
}

// GetValidSchemas returns every leaf schema branch (through allOf/anyOf/
// oneOf; if/then/else branches are not descended into) that the value
// currently satisfies, ignoring
// "required" failures on object instances — a temporary-sink re-validation
// pass used to drive completion suggestions while a document is
// still being edited and its objects are necessarily incomplete.
func GetValidSchemas(v *kson.Value, s *Schema) []*Schema {
	if s == nil {
		return nil
	}
	if s.Ref != "" && s.ResolvedRef != nil {
		return GetValidSchemas(v, s.ResolvedRef)
	}
	if len(s.OneOf) == 0 && len(s.AnyOf) == 0 && len(s.AllOf) == 0 {
		if matchesIgnoringRequired(v, s) {
			return []*Schema{s}
		}
		return nil
	}
	var out []*Schema
	for _, sub := range s.OneOf {
		out = append(out, GetValidSchemas(v, sub)...)
	}
	for _, sub := range s.AnyOf {
		out = append(out, GetValidSchemas(v, sub)...)
	}
	for _, sub := range s.AllOf {
		out = append(out, GetValidSchemas(v, sub)...)
	}
	if len(out) == 0 && matchesIgnoringRequired(v, s) {
		out = append(out, s)
	}
	return out
}

func matchesIgnoringRequired(v *kson.Value, s *Schema) bool {
	saved := s.Required
	s.Required = nil
	res := Validate(v, s)
	s.Required = saved
	return res.Valid
}
