package kson

import (
	"strconv"
	"strings"
	"unicode"
)

// IndentStyle selects the formatter's indentation unit: either a fixed
// number of spaces or a tab.
type IndentStyle struct {
	Tab    bool
	Spaces int // meaningful only when Tab is false; 0 defaults to 2
}

func (s IndentStyle) unit() string {
	if s.Tab {
		return "\t"
	}
	n := s.Spaces
	if n <= 0 {
		n = 2
	}
	return strings.Repeat(" ", n)
}

// FormatConfig configures the formatter.
type FormatConfig struct {
	Indent         IndentStyle
	MaxInlineWidth int // default 80
}

// DefaultFormatConfig returns the recommended default configuration.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{Indent: IndentStyle{Spaces: 2}, MaxInlineWidth: 80}
}

// Format renders a value tree back to KSON source text. Format is
// comment-preserving and idempotent: parsing Format's output and formatting
// the resulting value yields the same text again.
func Format(v *Value, cfg FormatConfig) string {
	if cfg.MaxInlineWidth <= 0 {
		cfg.MaxInlineWidth = 80
	}
	var b strings.Builder
	writeRoot(&b, v, cfg)
	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func writeRoot(b *strings.Builder, v *Value, cfg FormatConfig) {
	if v == nil {
		return
	}
	if v.Kind == ValueObject && len(v.Object.Members) > 0 {
		writeLeadingComments(b, v.LeadingComments, 0, cfg)
		writeMembers(b, v.Object.Members, cfg, 0, false)
		for _, c := range v.TrailingComments {
			b.WriteByte('#')
			b.WriteString(c)
			b.WriteByte('\n')
		}
	} else {
		// writeValue already writes the value's own leading and trailing
		// comments.
		writeValue(b, v, cfg, 0, false)
	}
}

// writeValue dispatches on kind. parentIsDashList marks that v is itself an
// element value inside an enclosing dash list, which forces a nested list
// value to use angle brackets rather than a second run of dashes, since two
// adjacent '-' lines would otherwise be ambiguous between a sibling element
// and a nested one.
func writeValue(b *strings.Builder, v *Value, cfg FormatConfig, depth int, parentIsDashList bool) {
	writeLeadingComments(b, v.LeadingComments, depth, cfg)
	switch v.Kind {
	case ValueObject:
		writeObjectValue(b, v, cfg, depth)
	case ValueList:
		writeListValue(b, v, cfg, depth, parentIsDashList)
	case ValueString:
		b.WriteString(formatKey(v.Str))
	case ValueNumber:
		b.WriteString(formatNumber(v.Num))
	case ValueBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case ValueNull:
		b.WriteString("null")
	case ValueEmbed:
		out := EncodeEmbed(v.Embed, prefix(cfg, depth))
		b.WriteString(strings.TrimPrefix(out, prefix(cfg, depth)))
	case ValueError:
		b.WriteString("null")
	}
	writeTrailingComments(b, v.TrailingComments)
}

func prefix(cfg FormatConfig, depth int) string {
	return strings.Repeat(cfg.Indent.unit(), depth)
}

func writeLeadingComments(b *strings.Builder, comments []string, depth int, cfg FormatConfig) {
	for _, c := range comments {
		b.WriteString(prefix(cfg, depth))
		b.WriteByte('#')
		b.WriteString(c)
		b.WriteByte('\n')
	}
}

func writeTrailingComments(b *strings.Builder, comments []string) {
	for _, c := range comments {
		b.WriteString(" #")
		b.WriteString(c)
	}
}

func writeObjectValue(b *strings.Builder, v *Value, cfg FormatConfig, depth int) {
	members := v.Object.Members
	if len(members) == 0 {
		b.WriteString("{ }")
		return
	}
	if inline, ok := renderObjectInline(members, cfg); ok {
		b.WriteString(inline)
		return
	}
	b.WriteString("{\n")
	writeMembers(b, members, cfg, depth+1, false)
	b.WriteString(prefix(cfg, depth))
	b.WriteString("}")
}

func writeMembers(b *strings.Builder, members []Member, cfg FormatConfig, depth int, _ bool) {
	for _, m := range members {
		writeLeadingComments(b, m.LeadingComments, depth, cfg)
		b.WriteString(prefix(cfg, depth))
		b.WriteString(formatKey(m.Key))
		b.WriteString(": ")
		writeValue(b, m.Value, cfg, depth, false)
		writeTrailingComments(b, m.TrailingComments)
		b.WriteByte('\n')
	}
}

func renderObjectInline(members []Member, cfg FormatConfig) (string, bool) {
	var parts []string
	for _, m := range members {
		if len(m.LeadingComments) > 0 || len(m.TrailingComments) > 0 {
			return "", false
		}
		if hasComments(m.Value) {
			return "", false
		}
		inlineVal, ok := renderValueInline(m.Value, cfg)
		if !ok {
			return "", false
		}
		parts = append(parts, formatKey(m.Key)+": "+inlineVal)
	}
	s := "{ " + strings.Join(parts, ", ") + " }"
	if len(s) > cfg.MaxInlineWidth {
		return "", false
	}
	return s, true
}

func renderValueInline(v *Value, cfg FormatConfig) (string, bool) {
	if hasComments(v) {
		return "", false
	}
	switch v.Kind {
	case ValueObject:
		if len(v.Object.Members) == 0 {
			return "{ }", true
		}
		return renderObjectInline(v.Object.Members, cfg)
	case ValueList:
		if len(v.List) == 0 {
			return "[ ]", true
		}
		var parts []string
		for _, e := range v.List {
			s, ok := renderValueInline(e, cfg)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return "[" + strings.Join(parts, ", ") + "]", true
	case ValueString:
		return formatKey(v.Str), true
	case ValueNumber:
		return formatNumber(v.Num), true
	case ValueBool:
		if v.Bool {
			return "true", true
		}
		return "false", true
	case ValueNull:
		return "null", true
	case ValueEmbed:
		return "", false
	default:
		return "", false
	}
}

func hasComments(v *Value) bool {
	if v == nil {
		return false
	}
	if len(v.LeadingComments) > 0 || len(v.TrailingComments) > 0 {
		return true
	}
	switch v.Kind {
	case ValueObject:
		for _, m := range v.Object.Members {
			if len(m.LeadingComments) > 0 || len(m.TrailingComments) > 0 || hasComments(m.Value) {
				return true
			}
		}
	case ValueList:
		for _, e := range v.List {
			if hasComments(e) {
				return true
			}
		}
	}
	return false
}

func writeListValue(b *strings.Builder, v *Value, cfg FormatConfig, depth int, parentIsDashList bool) {
	if len(v.List) == 0 {
		b.WriteString("[ ]")
		return
	}
	if inline, ok := renderValueInline(v, cfg); ok && len(inline) <= cfg.MaxInlineWidth {
		b.WriteString(inline)
		return
	}
	if parentIsDashList {
		b.WriteString("<\n")
		writeDashElements(b, v.List, cfg, depth+1)
		b.WriteString(prefix(cfg, depth))
		b.WriteString(">")
		return
	}
	b.WriteByte('\n')
	writeDashElements(b, v.List, cfg, depth)
}

func writeDashElements(b *strings.Builder, elems []*Value, cfg FormatConfig, depth int) {
	for _, e := range elems {
		writeLeadingComments(b, e.LeadingComments, depth, cfg)
		b.WriteString(prefix(cfg, depth))
		b.WriteString("- ")
		// The leading comments are already written above the dash;
		// writeValue writes the trailing ones.
		elem := *e
		elem.LeadingComments = nil
		writeValue(b, &elem, cfg, depth, true)
		b.WriteByte('\n')
	}
}

// formatKey renders an object key or a string value, preferring an unquoted identifier when
// safe and falling back to a quoted string otherwise.
func formatKey(key string) string {
	if isIdentSafe(key) {
		return key
	}
	return formatString(key)
}

func isIdentSafe(s string) bool {
	if s == "" || s == "true" || s == "false" || s == "null" {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	for i, r := range s {
		size := 1
		if isIdentBreak(r, size) {
			return false
		}
		if i == 0 && (r == '-' || r == '.' || r == '%' || r == '$' || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// formatString renders a string literal: single-quoted unless the content
// contains a single quote or a control character, in which case it is
// double-quoted.
func formatString(s string) string {
	needsDouble := false
	for _, r := range s {
		if r == '\'' || r < 0x20 {
			needsDouble = true
			break
		}
	}
	quote := byte('\'')
	if needsDouble {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u`)
				b.WriteString(padHex(int(r)))
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte(quote)
	return b.String()
}

func padHex(v int) string {
	const hex = "0123456789abcdef"
	out := make([]byte, 4)
	for i := 3; i >= 0; i-- {
		out[i] = hex[v&0xf]
		v >>= 4
	}
	return string(out)
}

// formatNumber re-emits a classified Number's lexeme with leading zeros
// stripped and the exponent indicator lowercased, otherwise preserving the
// author's original digits exactly.
func formatNumber(n Number) string {
	s := n.Lexeme
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	s = strings.Map(func(r rune) rune {
		if r == 'E' {
			return 'e'
		}
		return r
	}, s)
	intPart := s
	rest := ""
	if idx := strings.IndexAny(s, ".e"); idx >= 0 {
		intPart = s[:idx]
		rest = s[idx:]
	}
	for len(intPart) > 1 && intPart[0] == '0' && unicode.IsDigit(rune(intPart[1])) {
		intPart = intPart[1:]
	}
	out := intPart + rest
	if neg {
		out = "-" + out
	}
	return out
}
