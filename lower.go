package kson

import "strings"

// Lower converts a concrete syntax tree into the typed value tree.
// Lowering is a pure post-order walk: it never fails,
// mirroring a CstError node into a ValueError node so a single malformed
// subtree never prevents the rest of the document from lowering.
func Lower(root *CstNode) *Value {
	return lowerNode(root)
}

func lowerNode(n *CstNode) *Value {
	if n == nil {
		return &Value{Kind: ValueNull}
	}
	v := &Value{
		Location:         Location{Range: n.rangeOf()},
		LeadingComments:  commentTexts(n.LeadingComments),
		TrailingComments: commentTexts(n.TrailingComments),
	}
	switch n.Kind {
	case CstObject:
		v.Kind = ValueObject
		v.Object = lowerObject(n.Children)
	case CstBracketList, CstAngleList, CstDashList:
		v.Kind = ValueList
		v.List = make([]*Value, len(n.Children))
		for i, c := range n.Children {
			v.List[i] = lowerNode(c)
		}
	case CstString:
		v.Kind = ValueString
		v.Str = unquoteString(n.Token.Text)
	case CstIdent:
		v.Kind = ValueString
		v.Str = n.Token.Text
	case CstNumber:
		v.Kind = ValueNumber
		v.Num = ParseNumber(n.Token.Text)
	case CstBool:
		v.Kind = ValueBool
		v.Bool = n.Token.Kind == TokenTrue
	case CstNull:
		v.Kind = ValueNull
	case CstEmbed:
		v.Kind = ValueEmbed
		v.Embed = lowerEmbed(n)
	case CstError:
		v.Kind = ValueError
		v.ErrorMessage = n.ErrorMessage
	default:
		v.Kind = ValueError
		v.ErrorMessage = "unexpected CST node kind during lowering"
	}
	return v
}

func lowerObject(children []*CstNode) *ObjectValue {
	members := make([]Member, 0, len(children))
	for _, c := range children {
		if c.Kind != CstMember {
			continue
		}
		key := c.Key.Text
		if c.Key.Kind == TokenString {
			key = unquoteString(c.Key.Text)
		}
		members = append(members, Member{
			Key:              key,
			KeyLocation:      Location{Range: c.Key.Range()},
			Value:            lowerNode(c.Children[0]),
			LeadingComments:  commentTexts(c.LeadingComments),
			TrailingComments: commentTexts(c.TrailingComments),
		})
	}
	return newObjectValue(members)
}

func lowerEmbed(n *CstNode) *Embed {
	e := &Embed{Delimiter: n.EmbedDelimChar, DelimLen: n.EmbedDelimLen}
	if n.EmbedTag != nil {
		tag := n.EmbedTag.Text
		e.Tag = &tag
	}
	if n.EmbedMetadata != nil {
		meta := n.EmbedMetadata.Text
		e.Metadata = &meta
	}
	if n.EmbedContent != nil {
		e.Content = decodeEmbedContent(n.EmbedContent.Text, n.EmbedDelimChar)
	}
	return e
}

func commentTexts(toks []Token) []string {
	if len(toks) == 0 {
		return nil
	}
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = strings.TrimPrefix(t.Text, "#")
	}
	return out
}

// unquoteString strips the surrounding quote characters and resolves the
// escape sequences recognized by the lexer. It is deliberately
// tolerant: a malformed escape already produced a diagnostic at lex time, so
// here it is passed through literally rather than rejected a second time.
func unquoteString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	quote := raw[0]
	body := raw[1:]
	if len(body) > 0 && body[len(body)-1] == quote {
		body = body[:len(body)-1]
	}
	var b strings.Builder
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' || i == len(runes)-1 {
			b.WriteRune(r)
			continue
		}
		next := runes[i+1]
		switch next {
		case 'n':
			b.WriteRune('\n')
			i++
		case 'r':
			b.WriteRune('\r')
			i++
		case 't':
			b.WriteRune('\t')
			i++
		case 'b':
			b.WriteRune('\b')
			i++
		case 'f':
			b.WriteRune('\f')
			i++
		case '\\':
			b.WriteRune('\\')
			i++
		case '\'':
			b.WriteRune('\'')
			i++
		case '"':
			b.WriteRune('"')
			i++
		case '/':
			b.WriteRune('/')
			i++
		case 'u':
			if i+5 < len(runes) {
				hex := string(runes[i+2 : i+6])
				if cp, ok := parseHex4(hex); ok {
					b.WriteRune(rune(cp))
					i += 5
					continue
				}
			}
			b.WriteRune(r)
		default:
			b.WriteRune(next)
			i++
		}
	}
	return b.String()
}

func parseHex4(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	v := 0
	for _, r := range s {
		v <<= 4
		switch {
		case r >= '0' && r <= '9':
			v |= int(r - '0')
		case r >= 'a' && r <= 'f':
			v |= int(r-'a') + 10
		case r >= 'A' && r <= 'F':
			v |= int(r-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}
