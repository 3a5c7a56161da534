package kson

// ParserConfig configures the grammar parser.
type ParserConfig struct {
	MaxNestingLevel int // default 256
}

// DefaultParserConfig returns the recommended default configuration.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{MaxNestingLevel: 256}
}

// parser is a recursive-descent parser over the token stream produced by
// Lex. It never aborts: unexpected input is resynced past and recorded as a
// diagnostic, and the rest of the input keeps parsing.
type parser struct {
	toks  []Token
	pos   int
	sink  *DiagnosticSink
	cfg   ParserConfig
	depth int

	// abandonedToEOF is set once the nesting guard trips and the
	// balanced-skip used to abandon the offending subtree runs off the end
	// of input without finding a matching close. Every subsequent
	// "expected closing token" check consults this flag and suppresses its
	// own *_NO_CLOSE diagnostic, so a single deeply-nested-unclosed input
	// produces exactly one MAX_NESTING_LEVEL_EXCEEDED diagnostic rather
	// than one for the guard plus one per abandoned ancestor (see
	// DESIGN.md for the tradeoff this encodes).
	abandonedToEOF bool
}

// ParseResult is the CST-level parse result maps this into
// the richer ParseResult{ast, value, diagnostics} after lowering).
type ParseResult struct {
	Root        *CstNode
	Diagnostics []Diagnostic
}

// ParseCST tokenizes and parses src into a concrete syntax tree.
func ParseCST(src string, cfg ParserConfig) ParseResult {
	if cfg.MaxNestingLevel <= 0 {
		cfg = DefaultParserConfig()
	}
	toks, lexDiags := Lex(src)
	p := &parser{toks: toks, sink: NewDiagnosticSink(), cfg: cfg}
	for _, d := range lexDiags {
		p.sink.Add(d.Kind, d.Message, d.Range)
	}

	var root *CstNode
	if isBlank(src) {
		p.sink.Add(KindBlankSource, "source contains no value", Range{})
	} else {
		root = p.parseValue()
	}
	root = p.attachDocumentEndComments(root)

	if p.cur().Kind != TokenEOF {
		start := p.cur().Range()
		p.sink.Add(KindEOFNotReached, "unexpected trailing input after the root value", start)
	}

	return ParseResult{Root: root, Diagnostics: p.sink.Diagnostics()}
}

func isBlank(src string) bool {
	for _, r := range src {
		if r != ' ' && r != '\t' && r != '\r' && r != '\n' {
			return false
		}
	}
	return true
}

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// collectComments gathers any run of COMMENT tokens at the current
// position, in source order, without consuming anything else.
func (p *parser) collectComments() []Token {
	var out []Token
	for p.cur().Kind == TokenComment {
		out = append(out, p.advance())
	}
	return out
}

// trailingCommentFor consumes a single same-line trailing comment
// immediately following lastTok, if present.
func (p *parser) trailingCommentFor(lastTok Token) *Token {
	if p.cur().Kind == TokenComment && p.cur().Span.StartLine == lastTok.Span.EndLine {
		t := p.advance()
		return &t
	}
	return nil
}

func (p *parser) attachDocumentEndComments(root *CstNode) *CstNode {
	trailing := p.collectComments()
	if len(trailing) == 0 || root == nil {
		return root
	}
	root.TrailingComments = append(root.TrailingComments, trailing...)
	return root
}

// looksLikeMemberStart reports whether the parser is positioned at the
// start of a "key: value" member — the single disambiguator between a
// brace-free (nested) object and a plain scalar/list value.
func (p *parser) looksLikeMemberStart() bool {
	k := p.cur().Kind
	if k != TokenIdent && k != TokenString {
		return false
	}
	return p.peekAt(1).Kind == TokenColon
}

// enterNesting applies the nesting guard. It returns (ok=false,
// node) when the guard trips; callers must return node immediately without
// further recursion.
func (p *parser) enterNesting(openRange Range) (bool, *CstNode) {
	if p.depth+1 > p.cfg.MaxNestingLevel {
		p.sink.Add(KindMaxNestingLevelExceeded, "maximum nesting level exceeded", openRange)
		return false, p.abandonSubtree(openRange)
	}
	p.depth++
	return true, nil
}

func (p *parser) exitNesting() {
	p.depth--
}

// abandonSubtree skips tokens using balanced bracket/brace/angle counting
// starting at the current token (for braced, bracket and angle forms the
// opening token has already been consumed by the caller), swallowing the
// offending subtree so ancestor frames don't each
// emit their own NO_CLOSE diagnostic. The offending subtree is abandoned;
// the outer structure continues parsing.
func (p *parser) abandonSubtree(openRange Range) *CstNode {
	start := p.cur().Span
	balance := 0
	for {
		k := p.cur().Kind
		switch k {
		case TokenBraceL, TokenBracketL, TokenAngleL:
			balance++
		case TokenBraceR, TokenBracketR, TokenAngleR:
			balance--
		case TokenEOF:
			p.abandonedToEOF = true
			end := p.cur().Span
			return &CstNode{Kind: CstError, Span: start.cover(end), ErrorMessage: "maximum nesting level exceeded"}
		}
		p.advance()
		if balance <= 0 && (k == TokenBraceR || k == TokenBracketR || k == TokenAngleR) {
			end := p.toks[p.pos-1].Span
			return &CstNode{Kind: CstError, Span: start.cover(end), ErrorMessage: "maximum nesting level exceeded"}
		}
	}
}

// parseValue implements the unified `value` production, including
// the brace-free nested-object disambiguation that also backs root-level
// brace-free objects (root := value covers brace_free_object for free,
// since looksLikeMemberStart fires identically at any depth).
func (p *parser) parseValue() *CstNode {
	leading := p.collectComments()
	braceFree := p.looksLikeMemberStart()
	node := p.parseValueInner()
	if node != nil {
		if braceFree && node.Kind == CstObject && len(node.Children) > 0 && len(leading) > 0 {
			// A comment above a brace-free object belongs to its first member.
			first := node.Children[0]
			first.LeadingComments = append(leading, first.LeadingComments...)
			leading = nil
		}
		node.LeadingComments = append(leading, node.LeadingComments...)
		if last := p.lastConsumedToken(); last != nil {
			if tc := p.trailingCommentFor(*last); tc != nil {
				node.TrailingComments = append(node.TrailingComments, *tc)
			}
		}
	}
	return node
}

func (p *parser) lastConsumedToken() *Token {
	if p.pos == 0 {
		return nil
	}
	t := p.toks[p.pos-1]
	return &t
}

func (p *parser) parseValueInner() *CstNode {
	if p.looksLikeMemberStart() {
		return p.parseBraceFreeObject()
	}

	switch p.cur().Kind {
	case TokenBraceL:
		return p.parseBracedObject()
	case TokenBracketL:
		return p.parseBracketList()
	case TokenAngleL:
		return p.parseAngleList()
	case TokenListDash:
		return p.parseDashListAsValue()
	case TokenEmbedOpenDelim:
		return p.parseEmbed()
	case TokenString:
		t := p.advance()
		return &CstNode{Kind: CstString, Span: t.Span, Token: &t}
	case TokenNumber:
		t := p.advance()
		return &CstNode{Kind: CstNumber, Span: t.Span, Token: &t}
	case TokenTrue, TokenFalse:
		t := p.advance()
		return &CstNode{Kind: CstBool, Span: t.Span, Token: &t}
	case TokenNull:
		t := p.advance()
		return &CstNode{Kind: CstNull, Span: t.Span, Token: &t}
	case TokenIdent:
		t := p.advance()
		return &CstNode{Kind: CstIdent, Span: t.Span, Token: &t}
	default:
		return p.recoverUnexpected()
	}
}

// recoverUnexpected synthesizes an ERROR node for a token that cannot start
// any value production, records a diagnostic, and resyncs at the next
// structural anchor (comma, dot, eq, closing delimiter, or EOF) per §4.D.
func (p *parser) recoverUnexpected() *CstNode {
	start := p.cur().Span
	kind := KindListInvalidElem
	msg := "unexpected token; expected a value"
	if p.cur().Kind == TokenDashListEndEq {
		// A bare '=' with nothing to close is tolerated with a softer kind.
		kind = KindIgnoredDashListEndDash
		msg = "stray dash-list terminator"
	}
	for {
		k := p.cur().Kind
		if k == TokenComma || k == TokenObjectEndDot || k == TokenDashListEndEq ||
			k == TokenBraceR || k == TokenBracketR || k == TokenAngleR || k == TokenEOF {
			break
		}
		p.advance()
	}
	end := p.toks[max0(p.pos-1, 0)].Span
	if p.pos == 0 {
		end = start
	}
	p.sink.Add(kind, msg, start.cover(end).toRange())
	return &CstNode{Kind: CstError, Span: start.cover(end), ErrorMessage: msg}
}

func max0(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// parseBracedObject parses '{' members '}'.
func (p *parser) parseBracedObject() *CstNode {
	openTok := p.advance() // '{'
	ok, abandoned := p.enterNesting(openTok.Range())
	if !ok {
		return abandoned
	}
	defer p.exitNesting()

	members, _ := p.parseMembers(func(k TokenKind) bool { return k == TokenBraceR || k == TokenEOF })

	var end span
	if p.cur().Kind == TokenBraceR {
		end = p.advance().Span
	} else {
		end = p.cur().Span
		if !p.abandonedToEOF {
			p.sink.Add(KindObjectNoClose, "object is missing a closing '}'", openTok.Range())
		}
	}
	return &CstNode{Kind: CstObject, Span: openTok.Span.cover(end), Children: members}
}

// parseBraceFreeObject parses the "members_with_end_dot_for_nesting" object
// form: a run of key:value members terminated either explicitly by '.' or
// implicitly by the first token that cannot start another member.
func (p *parser) parseBraceFreeObject() *CstNode {
	start := p.cur().Span
	ok, abandoned := p.enterNesting(start.toRange())
	if !ok {
		return abandoned
	}
	defer p.exitNesting()

	members, explicitEnd := p.parseMembers(func(k TokenKind) bool {
		return k == TokenObjectEndDot || k == TokenEOF || k == TokenBraceR ||
			k == TokenBracketR || k == TokenAngleR || k == TokenDashListEndEq
	})

	end := start
	if len(members) > 0 {
		end = members[len(members)-1].Span
	}
	if p.cur().Kind == TokenObjectEndDot {
		end = p.advance().Span
		explicitEnd = true
	}
	_ = explicitEnd
	return &CstNode{Kind: CstObject, Span: start.cover(end), Children: members}
}

// parseMembers parses a run of "key: value" members, honoring optional
// (never mandatory) commas and flagging consecutive commas as EMPTY_COMMAS.
// It stops at the first token satisfying stop, or the first token that
// doesn't look like a member start.
func (p *parser) parseMembers(stop func(TokenKind) bool) (members []*CstNode, hadDot bool) {
	sawComma := false
	for {
		leading := p.collectComments()
		k := p.cur().Kind
		if stop(k) {
			if len(leading) > 0 {
				// Stranded comments before a closer become the closer's
				// problem at the caller level; reattach as trailing on the
				// last member so they aren't lost.
				if len(members) > 0 {
					members[len(members)-1].TrailingComments = append(members[len(members)-1].TrailingComments, leading...)
				}
			}
			return members, k == TokenObjectEndDot
		}
		if k == TokenComma {
			if sawComma {
				p.sink.Add(KindEmptyCommas, "consecutive commas are not allowed", p.cur().Range())
			}
			p.advance()
			sawComma = true
			continue
		}
		sawComma = false
		if !p.looksLikeMemberStart() {
			if len(leading) > 0 && len(members) > 0 {
				members[len(members)-1].TrailingComments = append(members[len(members)-1].TrailingComments, leading...)
			}
			return members, false
		}
		m := p.parseMember(leading)
		members = append(members, m)
	}
}

func (p *parser) parseMember(leading []Token) *CstNode {
	keyTok := p.advance() // IDENT or STRING
	var valueNode *CstNode
	if p.cur().Kind == TokenColon {
		p.advance()
		switch p.cur().Kind {
		case TokenEOF, TokenBraceR, TokenBracketR, TokenAngleR, TokenObjectEndDot, TokenDashListEndEq, TokenComma:
			p.sink.Add(KindObjectKeyNoValue, "object key has no value", keyTok.Range())
			valueNode = &CstNode{Kind: CstNull, Span: keyTok.Span}
		default:
			valueNode = p.parseValue()
		}
	} else {
		p.sink.Add(KindObjectKeyNoValue, "object key has no value", keyTok.Range())
		valueNode = &CstNode{Kind: CstNull, Span: keyTok.Span}
	}
	m := &CstNode{
		Kind:            CstMember,
		Key:             &keyTok,
		Children:        []*CstNode{valueNode},
		Span:            keyTok.Span.cover(valueNode.Span),
		LeadingComments: leading,
	}
	return m
}

// parseBracketList parses '[' elements ']'.
func (p *parser) parseBracketList() *CstNode {
	openTok := p.advance()
	ok, abandoned := p.enterNesting(openTok.Range())
	if !ok {
		return abandoned
	}
	defer p.exitNesting()

	elements := p.parseElements(func(k TokenKind) bool { return k == TokenBracketR || k == TokenEOF })

	var end span
	if p.cur().Kind == TokenBracketR {
		end = p.advance().Span
	} else {
		end = p.cur().Span
		if !p.abandonedToEOF {
			p.sink.Add(KindListNoClose, "list is missing a closing ']'", openTok.Range())
		}
	}
	return &CstNode{Kind: CstBracketList, Span: openTok.Span.cover(end), Children: elements}
}

// parseElements parses comma-optional values for a bracketed list.
func (p *parser) parseElements(stop func(TokenKind) bool) []*CstNode {
	var elements []*CstNode
	sawComma := false
	for {
		leading := p.collectComments()
		k := p.cur().Kind
		if stop(k) {
			if len(leading) > 0 && len(elements) > 0 {
				elements[len(elements)-1].TrailingComments = append(elements[len(elements)-1].TrailingComments, leading...)
			}
			return elements
		}
		if k == TokenComma {
			if sawComma {
				p.sink.Add(KindEmptyCommas, "consecutive commas are not allowed", p.cur().Range())
			}
			p.advance()
			sawComma = true
			continue
		}
		if k == TokenColon {
			p.sink.Add(KindListStrayColon, "unexpected ':' inside a list", p.cur().Range())
			p.advance()
			continue
		}
		sawComma = false
		before := p.pos
		v := p.parseValue()
		if p.pos == before {
			// Recovery stopped on a token it cannot consume ('.', '=', '}',
			// '>'); skip it so the loop makes progress.
			p.advance()
		}
		v.LeadingComments = append(leading, v.LeadingComments...)
		elements = append(elements, v)
	}
}

// parseAngleList parses '<' dash_elements '>'.
func (p *parser) parseAngleList() *CstNode {
	openTok := p.advance()
	ok, abandoned := p.enterNesting(openTok.Range())
	if !ok {
		return abandoned
	}
	defer p.exitNesting()

	elements := p.parseDashElements(func(k TokenKind) bool { return k == TokenAngleR || k == TokenEOF })

	var end span
	if p.cur().Kind == TokenAngleR {
		end = p.advance().Span
	} else {
		end = p.cur().Span
		if !p.abandonedToEOF {
			p.sink.Add(KindListNoClose, "list is missing a closing '>'", openTok.Range())
		}
	}
	return &CstNode{Kind: CstAngleList, Span: openTok.Span.cover(end), Children: elements}
}

// parseDashListAsValue parses a bare dash list used as a value, reused at
// any nesting depth since parseValue is the single value entry point.
func (p *parser) parseDashListAsValue() *CstNode {
	start := p.cur().Span
	ok, abandoned := p.enterNesting(start.toRange())
	if !ok {
		return abandoned
	}
	defer p.exitNesting()

	elements := p.parseDashElements(func(k TokenKind) bool {
		return k == TokenEOF || k == TokenBraceR || k == TokenBracketR || k == TokenAngleR || k == TokenObjectEndDot
	})
	end := start
	if len(elements) > 0 {
		end = elements[len(elements)-1].Span
	}
	return &CstNode{Kind: CstDashList, Span: start.cover(end), Children: elements}
}

// parseDashElements parses ('-' value)+ optionally terminated by '='.
func (p *parser) parseDashElements(stop func(TokenKind) bool) []*CstNode {
	var elements []*CstNode
	for {
		leading := p.collectComments()
		k := p.cur().Kind
		if stop(k) {
			if len(leading) > 0 && len(elements) > 0 {
				elements[len(elements)-1].TrailingComments = append(elements[len(elements)-1].TrailingComments, leading...)
			}
			return elements
		}
		if k == TokenDashListEndEq {
			p.advance()
			if len(leading) > 0 && len(elements) > 0 {
				elements[len(elements)-1].TrailingComments = append(elements[len(elements)-1].TrailingComments, leading...)
			}
			return elements
		}
		if k != TokenListDash {
			if len(leading) > 0 && len(elements) > 0 {
				elements[len(elements)-1].TrailingComments = append(elements[len(elements)-1].TrailingComments, leading...)
			}
			return elements
		}
		dashTok := p.advance()
		next := p.cur().Kind
		if stop(next) || next == TokenDashListEndEq || next == TokenListDash {
			p.sink.Add(KindIgnoredDashListEndDash, "dash list element has no value", dashTok.Range())
			continue
		}
		v := p.parseValue()
		v.LeadingComments = append(leading, v.LeadingComments...)
		elements = append(elements, v)
	}
}

// parseEmbed builds a CstEmbed node directly from the EMBED_* token run
// produced by the lexer.
func (p *parser) parseEmbed() *CstNode {
	openTok := p.advance() // EMBED_OPEN_DELIM
	delimChar := rune(0)
	if len(openTok.Text) > 0 {
		delimChar = rune(openTok.Text[0])
	}
	node := &CstNode{
		Kind:          CstEmbed,
		Span:          openTok.Span,
		EmbedDelimChar: delimChar,
		EmbedDelimLen:  len(openTok.Text),
	}
	if p.cur().Kind == TokenEmbedTag {
		t := p.advance()
		node.EmbedTag = &t
	}
	if p.cur().Kind == TokenEmbedMetadata {
		t := p.advance()
		node.EmbedMetadata = &t
	}
	if p.cur().Kind == TokenEmbedContent {
		t := p.advance()
		node.EmbedContent = &t
		node.Span = node.Span.cover(t.Span)
	}
	if p.cur().Kind == TokenEmbedCloseDelim {
		t := p.advance()
		node.EmbedClosed = true
		node.Span = node.Span.cover(t.Span)
	}
	return node
}
