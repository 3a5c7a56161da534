package schema

import (
	"fmt"
	"strings"

	"github.com/ksonlang/kson-go"
)

// CompletionItem is one suggestion returned by GetCompletionsAtLocation
//.
type CompletionItem struct {
	Label  string
	Detail string
	Kind   string // "property" | "value"
}

// GetCompletionsAtLocation returns property-name or enum-value completions
// applicable at the cursor, filtered to the schema branches the
// already-typed siblings actually satisfy, so a oneOf branch ruled out by a
// discriminator field doesn't pollute suggestions with its sibling branches'
// properties.
func GetCompletionsAtLocation(root *kson.Value, rootSchema *Schema, line, col int) []CompletionItem {
	node, path, ok := FindAtCoordinate(root, line, col)
	if !ok {
		return nil
	}
	parentPath := path[:maxInt(len(path)-1, 0)]
	parent, parentOK := NavigateByTokens(root, parentPath)
	parentSchema := schemaAtPath(rootSchema, root, parentPath)
	if !parentOK || parent == nil {
		parent = root
		parentSchema = rootSchema
	}

	schemas := GetValidSchemas(parent, parentSchema)
	seen := map[string]bool{}
	var out []CompletionItem
	for _, s := range schemas {
		for name, propSchema := range s.Properties {
			if parent.Kind == kson.ValueObject && parent.Object.Has(name) {
				continue
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			detail := "property"
			if propSchema != nil && propSchema.Description != nil {
				detail = *propSchema.Description
			}
			out = append(out, CompletionItem{Label: name, Detail: detail, Kind: "property"})
		}
		if node != nil && node.Kind == kson.ValueString {
			for _, e := range s.Enum {
				if e.Kind == kson.ValueString && !seen[e.Str] {
					seen[e.Str] = true
					out = append(out, CompletionItem{Label: e.Str, Detail: "enum value", Kind: "value"})
				}
			}
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SchemaInfo is the hover payload for a document position.
type SchemaInfo struct {
	Title       string
	Description string
	Type        []string
	Enum        []*kson.Value
	Const       *kson.Value
	Format      string
	Default     *kson.Value
}

// Markdown renders the hover content with a fixed field ordering: title,
// description, type, enum/const, format, default.
func (si *SchemaInfo) Markdown() string {
	var b strings.Builder
	if si.Title != "" {
		fmt.Fprintf(&b, "**%s**\n\n", si.Title)
	}
	if si.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", si.Description)
	}
	if len(si.Type) > 0 {
		fmt.Fprintf(&b, "Type: `%s`\n\n", strings.Join(si.Type, " | "))
	}
	if si.Const != nil {
		fmt.Fprintf(&b, "Const: `%v`\n\n", renderValueLiteral(si.Const))
	} else if len(si.Enum) > 0 {
		vals := make([]string, len(si.Enum))
		for i, e := range si.Enum {
			vals[i] = renderValueLiteral(e)
		}
		fmt.Fprintf(&b, "Enum: %s\n\n", strings.Join(vals, ", "))
	}
	if si.Format != "" {
		fmt.Fprintf(&b, "Format: `%s`\n\n", si.Format)
	}
	if si.Default != nil {
		fmt.Fprintf(&b, "Default: `%v`\n\n", renderValueLiteral(si.Default))
	}
	return strings.TrimSpace(b.String())
}

func renderValueLiteral(v *kson.Value) string {
	switch v.Kind {
	case kson.ValueString:
		return v.Str
	case kson.ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case kson.ValueNull:
		return "null"
	case kson.ValueNumber:
		return v.Num.Lexeme
	default:
		return ""
	}
}

// GetSchemaInfoAtLocation resolves the schema applicable at a document
// position and renders its metadata for hover display.
func GetSchemaInfoAtLocation(root *kson.Value, rootSchema *Schema, line, col int) (*SchemaInfo, bool) {
	node, path, ok := FindAtCoordinate(root, line, col)
	if !ok {
		return nil, false
	}
	s := schemaAtPath(rootSchema, root, path)
	if s == nil {
		return nil, false
	}
	_ = node
	info := &SchemaInfo{Type: s.Type, Enum: s.Enum, Format: derefString(s.Format)}
	if s.Title != nil {
		info.Title = *s.Title
	}
	if s.Description != nil {
		info.Description = *s.Description
	}
	if s.Const != nil {
		info.Const = s.Const.Value
	}
	info.Default = s.Default
	return info, true
}

// schemaAtPath descends both the value tree and the schema tree in lockstep
// to find the schema governing the node at path, selecting whichever
// oneOf/anyOf branch the actual sibling data satisfies along the way.
func schemaAtPath(s *Schema, v *kson.Value, path []string) *Schema {
	cur := s
	curVal := v
	for _, tok := range path {
		if cur == nil {
			return nil
		}
		if cur.Ref != "" && cur.ResolvedRef != nil {
			cur = cur.ResolvedRef
		}
		branches := GetValidSchemas(curVal, cur)
		if len(branches) > 0 {
			cur = branches[0]
		}
		if curVal == nil {
			return nil
		}
		switch curVal.Kind {
		case kson.ValueObject:
			next, ok := curVal.Object.Get(tok)
			if !ok {
				return nil
			}
			propSchema, ok := cur.Properties[tok]
			if !ok {
				propSchema = matchingPatternProperty(cur, tok)
			}
			if !ok && propSchema == nil {
				propSchema = cur.AdditionalProperties
			}
			cur = propSchema
			curVal = next
		case kson.ValueList:
			idx := 0
			fmt.Sscanf(tok, "%d", &idx)
			if idx < 0 || idx >= len(curVal.List) {
				return nil
			}
			itemSchema := cur.Items
			if cur.ItemsTuple != nil {
				if idx < len(cur.ItemsTuple) {
					itemSchema = cur.ItemsTuple[idx]
				} else {
					itemSchema = cur.AdditionalItems
				}
			}
			cur = itemSchema
			curVal = curVal.List[idx]
		default:
			return nil
		}
	}
	if cur != nil && cur.Ref != "" && cur.ResolvedRef != nil {
		return cur.ResolvedRef
	}
	return cur
}

func matchingPatternProperty(s *Schema, key string) *Schema {
	for pat, sub := range s.PatternProperties {
		if re := compileRegexp(pat); re != nil && re.MatchString(key) {
			return sub
		}
	}
	return nil
}

// GetSchemaLocationAtLocation returns the $id URI of the schema governing a
// document position, or "#" when that schema has no $id, for "jump from
// document to schema" navigation. It does not report a JSON-Pointer path
// into the schema or a source range.
func GetSchemaLocationAtLocation(root *kson.Value, rootSchema *Schema, line, col int) (string, bool) {
	_, path, ok := FindAtCoordinate(root, line, col)
	if !ok {
		return "", false
	}
	s := schemaAtPath(rootSchema, root, path)
	if s == nil {
		return "", false
	}
	return schemaLocationOf(s), true
}

// ResolveRefAtLocation reports whether the $ref value under the cursor
// within a schema document resolves against s. The returned Range is always
// the zero Range: the target's source position is not reported.
func ResolveRefAtLocation(schemaDoc *kson.Value, s *Schema, line, col int) (kson.Range, bool) {
	node, _, ok := FindAtCoordinate(schemaDoc, line, col)
	if !ok || node.Kind != kson.ValueString {
		return kson.Range{}, false
	}
	target, err := resolveRef(s, node.Str)
	if err != nil || target == nil {
		return kson.Range{}, false
	}
	return kson.Range{}, true
}
