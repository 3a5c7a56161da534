package kson

import "strings"

// decodeEmbedContent turns the lexer's verbatim EMBED_CONTENT text into the
// logical embed payload: common leading indentation is stripped
// and escaped delimiter runs are unescaped.
func decodeEmbedContent(raw string, delim rune) string {
	lines := splitLines(raw)
	dedented := dedent(lines)
	for i, l := range dedented {
		dedented[i] = unescapeDelimRuns(l, delim)
	}
	return strings.Join(dedented, "\n")
}

func splitLines(s string) []string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// dedent strips the longest common leading whitespace run shared by every
// non-blank line, matching the indentation normalization most embed-block
// formats apply so authored content isn't polluted by the enclosing
// document's nesting depth.
func dedent(lines []string) []string {
	min := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if min == -1 || n < min {
			min = n
		}
	}
	if min <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if len(l) >= min {
			out[i] = l[min:]
		} else {
			out[i] = strings.TrimLeft(l, " \t")
		}
	}
	return out
}

// unescapeDelimRuns reverses escapeDelimRuns: "c\c\c" becomes "ccc".
func unescapeDelimRuns(line string, delim rune) string {
	runes := []rune(line)
	var b strings.Builder
	for i, r := range runes {
		if r == '\\' && i > 0 && runes[i-1] == delim && i+1 < len(runes) && runes[i+1] == delim {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapeDelimRuns breaks up any run of delim characters so it can never be
// mistaken for a closing run when the block is re-emitted: "ccc" becomes
// "c\c\c".
func escapeDelimRuns(line string, delim rune) string {
	var b strings.Builder
	runes := []rune(line)
	for i, r := range runes {
		b.WriteRune(r)
		if r == delim && i+1 < len(runes) && runes[i+1] == delim {
			b.WriteByte('\\')
		}
	}
	return b.String()
}

// ChooseDelimiter picks the embed delimiter character that requires the
// fewest escapes when re-emitting content, preferring '%' on a tie. The
// two delimiter characters recognized by the lexer are '%' and '$'.
func ChooseDelimiter(content string) rune {
	percent := strings.Count(content, "%%")
	dollar := strings.Count(content, "$$")
	if dollar < percent {
		return '$'
	}
	return '%'
}

// EncodeEmbed renders an Embed back into source text at the given
// indentation. The opening run is one longer than the longest run of the
// chosen delimiter present in the content, and the closing run is one
// longer than the opening run.
func EncodeEmbed(e *Embed, indent string) string {
	delim := e.Delimiter
	if delim == 0 {
		delim = ChooseDelimiter(e.Content)
	}
	n := longestRun(e.Content, delim) + 1
	if n < 1 {
		n = 1
	}
	openRun := strings.Repeat(string(delim), n)

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(openRun)
	if e.Tag != nil {
		b.WriteByte(' ')
		b.WriteString(*e.Tag)
	}
	if e.Metadata != nil {
		b.WriteString(": ")
		b.WriteString(*e.Metadata)
	}
	b.WriteByte('\n')

	for _, line := range splitLines(e.Content) {
		b.WriteString(indent)
		b.WriteString(escapeDelimRuns(line, delim))
		b.WriteByte('\n')
	}

	b.WriteString(indent)
	b.WriteString(strings.Repeat(string(delim), n+1))
	b.WriteByte('\n')
	return b.String()
}

func longestRun(content string, delim rune) int {
	longest := 0
	current := 0
	for _, r := range content {
		if r == delim {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

// Embed object-key isomorphism: an embed block is equivalent to
// an object carrying these three (or fewer) well-known keys, so a document
// author may spell the same data either way and schema validation sees one
// shape.
const (
	EmbedTagKey      = "embedTag"
	EmbedMetadataKey = "embedMetadata"
	EmbedContentKey  = "embedContent"
)

// ObjectFromEmbed converts an Embed into its isomorphic object form.
func ObjectFromEmbed(e *Embed, loc Location) *Value {
	members := []Member{
		{Key: EmbedContentKey, Value: &Value{Kind: ValueString, Str: e.Content, Location: loc}},
	}
	if e.Tag != nil {
		members = append([]Member{{Key: EmbedTagKey, Value: &Value{Kind: ValueString, Str: *e.Tag, Location: loc}}}, members...)
	}
	if e.Metadata != nil {
		members = append(members, Member{Key: EmbedMetadataKey, Value: &Value{Kind: ValueString, Str: *e.Metadata, Location: loc}})
	}
	return &Value{Kind: ValueObject, Object: newObjectValue(members), Location: loc}
}

// EmbedFromObject recognizes an object shaped like the embed isomorphism and
// converts it back into an Embed. ok is false for any object lacking
// embedContent, or carrying keys outside the three well-known ones.
func EmbedFromObject(o *ObjectValue) (*Embed, bool) {
	if o == nil || !o.Has(EmbedContentKey) {
		return nil, false
	}
	for _, k := range o.Keys() {
		if k != EmbedTagKey && k != EmbedMetadataKey && k != EmbedContentKey {
			return nil, false
		}
	}
	contentV, _ := o.Get(EmbedContentKey)
	if contentV.Kind != ValueString {
		return nil, false
	}
	e := &Embed{Content: contentV.Str}
	if tagV, ok := o.Get(EmbedTagKey); ok && tagV.Kind == ValueString {
		tag := tagV.Str
		e.Tag = &tag
	}
	if metaV, ok := o.Get(EmbedMetadataKey); ok && metaV.Kind == ValueString {
		meta := metaV.Str
		e.Metadata = &meta
	}
	return e, true
}
