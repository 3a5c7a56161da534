package kson

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer turns source text into a finite token stream terminated by EOF,
// never aborting on malformed input: illegal lexical conditions
// become diagnostics attached either to a TokenError or to an otherwise
// well-formed token, and lexing continues.
type lexer struct {
	c     *cursor
	sink  *DiagnosticSink
	toks  []Token
}

// Lex tokenizes src and returns the resulting stream plus any diagnostics.
// The returned slice always ends with a single TokenEOF.
func Lex(src string) ([]Token, []Diagnostic) {
	lx := &lexer{c: newCursor(src), sink: NewDiagnosticSink()}
	lx.run()
	return lx.toks, lx.sink.Diagnostics()
}

func (lx *lexer) emit(kind TokenKind, text string, sp span) {
	lx.toks = append(lx.toks, Token{Kind: kind, Text: text, Span: sp})
}

func (lx *lexer) emitDiag(kind TokenKind, text string, sp span, diag DiagnosticKind, msg string) {
	lx.toks = append(lx.toks, Token{Kind: kind, Text: text, Span: sp, Diag: diag})
	lx.sink.Add(diag, msg, sp.toRange())
}

func (lx *lexer) run() {
	for {
		lx.skipInsignificantWhitespace()
		if lx.c.atEnd() {
			break
		}
		r, _ := lx.c.peek()
		switch {
		case r == '#':
			lx.lexComment()
		case r == '{':
			lx.lexSingle(TokenBraceL)
		case r == '}':
			lx.lexSingle(TokenBraceR)
		case r == '[':
			lx.lexSingle(TokenBracketL)
		case r == ']':
			lx.lexSingle(TokenBracketR)
		case r == '<':
			lx.lexSingle(TokenAngleL)
		case r == '>':
			lx.lexSingle(TokenAngleR)
		case r == ':':
			lx.lexSingle(TokenColon)
		case r == ',':
			lx.lexSingle(TokenComma)
		case r == '.':
			lx.lexDotOrNumber()
		case r == '=':
			lx.lexSingle(TokenDashListEndEq)
		case r == '\'', r == '"':
			lx.lexString(r)
		case r == '%' || r == '$':
			lx.lexEmbedOrIdent(r)
		case r == '-':
			lx.lexDashOrNumber()
		case unicode.IsDigit(r):
			lx.lexNumber()
		default:
			lx.lexIdentOrKeyword()
		}
	}
	lx.emit(TokenEOF, "", lx.c.pos())
}

// skipInsignificantWhitespace skips spaces, tabs, and newlines. KSON does
// not thread layout trivia through the lexer: the CST lowering pass (see
// cst.go/parser.go) reattaches comments to nodes by position, and blank
// lines carry no semantic weight of their own.
func (lx *lexer) skipInsignificantWhitespace() {
	for {
		r, size := lx.c.peek()
		if size == 0 {
			return
		}
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			lx.c.advance()
			continue
		}
		return
	}
}

func (lx *lexer) lexSingle(kind TokenKind) {
	start := lx.c.pos()
	r, _ := lx.c.advance()
	end := lx.c.pos()
	sp := start.cover(end)
	lx.emit(kind, string(r), sp)
}

func (lx *lexer) lexComment() {
	start := lx.c.pos()
	var b strings.Builder
	for {
		r, size := lx.c.peek()
		if size == 0 || r == '\n' {
			break
		}
		lx.c.advance()
		b.WriteRune(r)
	}
	end := lx.c.pos()
	lx.emit(TokenComment, b.String(), start.cover(end))
}

// lexDotOrNumber disambiguates the end-of-object '.' terminator from a
// leading-dot would-be number. KSON numbers never start with a bare '.' —
// digits must precede a fractional part — so a standalone '.' is always
// OBJECT_END_DOT.
func (lx *lexer) lexDotOrNumber() {
	lx.lexSingle(TokenObjectEndDot)
}

// lexDashOrNumber implements the dash rule: a '-' followed by whitespace
// or EOF begins a list element at that token position; otherwise it is the
// sign of a number or part of an identifier.
func (lx *lexer) lexDashOrNumber() {
	start := lx.c.pos()
	next, size := lx.c.peekAt(1)
	if size == 0 || next == ' ' || next == '\t' || next == '\r' || next == '\n' {
		lx.c.advance()
		end := lx.c.pos()
		lx.emit(TokenListDash, "-", start.cover(end))
		return
	}
	if unicode.IsDigit(next) {
		lx.lexNumber()
		return
	}
	lx.lexIdentOrKeyword()
}

func isIdentBreak(r rune, size int) bool {
	if size == 0 {
		return true
	}
	switch r {
	case ' ', '\t', '\r', '\n', '{', '}', '[', ']', '<', '>', ':', ',', '\'', '"', '#', '=':
		return true
	}
	return false
}

// lexNumber scans the lexeme: optional leading '-', digits, optional '.'
// fraction, optional [eE][+-]?digits exponent. A
// trailing 'E'/'E-' with no digits is DANGLING_EXP_INDICATOR but the token
// is still produced so the parser can continue.
func (lx *lexer) lexNumber() {
	start := lx.c.pos()
	var b strings.Builder

	if r, size := lx.c.peek(); size != 0 && r == '-' {
		b.WriteRune(r)
		lx.c.advance()
	}
	for {
		r, size := lx.c.peek()
		if size == 0 || !unicode.IsDigit(r) {
			break
		}
		b.WriteRune(r)
		lx.c.advance()
	}
	if r, size := lx.c.peek(); size != 0 && r == '.' {
		if next, nsize := lx.c.peekAt(1); nsize != 0 && unicode.IsDigit(next) {
			b.WriteRune(r)
			lx.c.advance()
			for {
				r, size := lx.c.peek()
				if size == 0 || !unicode.IsDigit(r) {
					break
				}
				b.WriteRune(r)
				lx.c.advance()
			}
		}
	}

	dangling := false
	if r, size := lx.c.peek(); size != 0 && (r == 'e' || r == 'E') {
		b.WriteRune(r)
		lx.c.advance()
		if r2, size2 := lx.c.peek(); size2 != 0 && (r2 == '+' || r2 == '-') {
			b.WriteRune(r2)
			lx.c.advance()
		}
		digits := 0
		for {
			r3, size3 := lx.c.peek()
			if size3 == 0 || !unicode.IsDigit(r3) {
				break
			}
			b.WriteRune(r3)
			lx.c.advance()
			digits++
		}
		if digits == 0 {
			dangling = true
		}
	}

	end := lx.c.pos()
	sp := start.cover(end)
	text := b.String()
	if dangling {
		lx.emitDiag(TokenNumber, text, sp, KindDanglingExpIndicator, "exponent indicator with no following digits")
		return
	}
	lx.emit(TokenNumber, text, sp)
}

// lexEmbedOrIdent handles the '%'/'$' lead-in. A run of length >= 1 of the
// same character occupying "token position" always opens an embed block,
// so a key or identifier that starts with '%' or '$' has to be quoted;
// inside an identifier these characters are ordinary identifier
// characters.
func (lx *lexer) lexEmbedOrIdent(delim rune) {
	lx.lexEmbedBlock(delim)
}

func (lx *lexer) lexEmbedBlock(delim rune) {
	start := lx.c.pos()
	n := 0
	for {
		r, size := lx.c.peek()
		if size == 0 || r != delim {
			break
		}
		lx.c.advance()
		n++
	}
	openEnd := lx.c.pos()
	lx.emit(TokenEmbedOpenDelim, strings.Repeat(string(delim), n), start.cover(openEnd))

	// Optional tag: an identifier-like run on the same line.
	lx.skipSpacesOnly()
	if r, size := lx.c.peek(); size != 0 && r != '\n' && r != ':' {
		tagStart := lx.c.pos()
		var tb strings.Builder
		for {
			r, size := lx.c.peek()
			if size == 0 || r == '\n' || r == ':' || r == ' ' || r == '\t' {
				break
			}
			tb.WriteRune(r)
			lx.c.advance()
		}
		if tb.Len() > 0 {
			tagEnd := lx.c.pos()
			lx.emit(TokenEmbedTag, tb.String(), tagStart.cover(tagEnd))
		}
	}

	// Optional metadata: ": free text" to end of line.
	lx.skipSpacesOnly()
	if r, size := lx.c.peek(); size != 0 && r == ':' {
		lx.c.advance()
		lx.skipSpacesOnly()
		metaStart := lx.c.pos()
		var mb strings.Builder
		for {
			r, size := lx.c.peek()
			if size == 0 || r == '\n' {
				break
			}
			mb.WriteRune(r)
			lx.c.advance()
		}
		metaEnd := lx.c.pos()
		lx.emit(TokenEmbedMetadata, mb.String(), metaStart.cover(metaEnd))
	}

	// Consume the rest of the opening line.
	for {
		r, size := lx.c.peek()
		if size == 0 || r == '\n' {
			break
		}
		lx.c.advance()
	}
	if r, size := lx.c.peek(); size != 0 && r == '\n' {
		lx.c.advance()
	}

	// Content: verbatim until a line whose (optionally indented) prefix is a
	// run of n+1 identical delimiter characters.
	closeRun := strings.Repeat(string(delim), n+1)
	contentStart := lx.c.pos()
	var content strings.Builder
	atLineStart := true
	for {
		if lx.c.atEnd() {
			end := lx.c.pos()
			lx.emit(TokenEmbedContent, content.String(), contentStart.cover(end))
			lx.sink.Add(KindEmbedBlockNoClose, "embed block has no closing delimiter", start.cover(end).toRange())
			return
		}
		if atLineStart {
			lineStart := *lx.c
			line := lx.peekLine()
			trimmed := strings.TrimLeft(line, " \t")
			if strings.HasPrefix(trimmed, closeRun) && isEmbedCloseRunExact(trimmed, delim, n+1) {
				contentEnd := lineStart.pos()
				lx.emit(TokenEmbedContent, content.String(), contentStart.cover(contentEnd))
				lx.consumeEmbedClose(delim, n+1)
				return
			}
		}
		r, ok := lx.c.advance()
		if !ok {
			break
		}
		content.WriteRune(r)
		atLineStart = r == '\n'
	}
	end := lx.c.pos()
	lx.emit(TokenEmbedContent, content.String(), contentStart.cover(end))
	lx.sink.Add(KindEmbedBlockNoClose, "embed block has no closing delimiter", start.cover(end).toRange())
}

// isEmbedCloseRunExact ensures the run of delim characters is exactly n
// long (not part of a longer run), so e.g. a "%%%" line doesn't falsely
// close a 2-run expecting "%%".
func isEmbedCloseRunExact(trimmed string, delim rune, n int) bool {
	runLen := 0
	for _, r := range trimmed {
		if r != delim {
			break
		}
		runLen++
	}
	return runLen == n
}

func (lx *lexer) consumeEmbedClose(delim rune, n int) {
	start := lx.c.pos()
	lx.skipSpacesOnly()
	for i := 0; i < n; i++ {
		lx.c.advance()
	}
	end := lx.c.pos()
	lx.emit(TokenEmbedCloseDelim, strings.Repeat(string(delim), n), start.cover(end))
	for {
		r, size := lx.c.peek()
		if size == 0 || r == '\n' {
			break
		}
		lx.c.advance()
	}
}

func (lx *lexer) peekLine() string {
	rest := lx.c.remaining()
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

func (lx *lexer) skipSpacesOnly() {
	for {
		r, size := lx.c.peek()
		if size == 0 || (r != ' ' && r != '\t') {
			return
		}
		lx.c.advance()
	}
}

// lexString handles single- and double-quoted strings with escapes
//. Raw newlines are permitted inside strings.
func (lx *lexer) lexString(quote rune) {
	start := lx.c.pos()
	lx.c.advance() // consume opening quote
	var raw strings.Builder
	raw.WriteRune(quote)

	badEscape := false
	badUnicode := false
	controlChar := false

	for {
		r, size := lx.c.peek()
		if size == 0 {
			end := lx.c.pos()
			lx.emitDiag(TokenString, raw.String(), start.cover(end), KindStringNoClose, "unterminated string literal")
			return
		}
		if r == quote {
			lx.c.advance()
			raw.WriteRune(r)
			break
		}
		if r == '\\' {
			raw.WriteRune(r)
			lx.c.advance()
			esc, size2 := lx.c.peek()
			if size2 == 0 {
				badEscape = true
				break
			}
			switch esc {
			case 'n', 'r', 't', 'b', 'f', '\\', '\'', '"', '/':
				raw.WriteRune(esc)
				lx.c.advance()
			case 'u':
				raw.WriteRune(esc)
				lx.c.advance()
				hex := 0
				for hex < 4 {
					hr, hsize := lx.c.peek()
					if hsize == 0 || !isHexDigit(hr) {
						badUnicode = true
						break
					}
					raw.WriteRune(hr)
					lx.c.advance()
					hex++
				}
			default:
				badEscape = true
				raw.WriteRune(esc)
				lx.c.advance()
			}
			continue
		}
		if r < 0x20 && r != '\n' && r != '\r' {
			controlChar = true
		}
		raw.WriteRune(r)
		lx.c.advance()
	}

	end := lx.c.pos()
	sp := start.cover(end)
	switch {
	case badUnicode:
		lx.emitDiag(TokenString, raw.String(), sp, KindStringBadUnicodeEscape, "invalid unicode escape sequence")
	case badEscape:
		lx.emitDiag(TokenString, raw.String(), sp, KindStringBadEscape, "invalid escape sequence")
	case controlChar:
		lx.emitDiag(TokenString, raw.String(), sp, KindStringControlChar, "unescaped control character in string")
	default:
		lx.emit(TokenString, raw.String(), sp)
	}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// lexIdentOrKeyword lexes any non-whitespace run of non-reserved code
// points that isn't a literal keyword/number/string/delimiter.
// true/false/null are recognized by exact match; everything else becomes
// IDENT.
func (lx *lexer) lexIdentOrKeyword() {
	start := lx.c.pos()
	var b strings.Builder
	r, size := lx.c.peek()
	if size == 0 {
		return
	}
	if !utf8.ValidRune(r) {
		lx.c.advance()
		end := lx.c.pos()
		lx.emitDiag(TokenError, string(utf8.RuneError), start.cover(end), KindIllegalCharacters, "illegal character in input")
		return
	}
	for {
		r, size := lx.c.peek()
		if isIdentBreak(r, size) {
			break
		}
		b.WriteRune(r)
		lx.c.advance()
	}
	end := lx.c.pos()
	sp := start.cover(end)
	text := b.String()
	if text == "" {
		// Stray character that cannot start any other token and cannot form
		// an identifier on its own (e.g. a bare control character).
		r, _ := lx.c.advance()
		end := lx.c.pos()
		lx.emitDiag(TokenError, string(r), start.cover(end), KindIllegalCharacters, "illegal character in input")
		return
	}
	switch text {
	case "true":
		lx.emit(TokenTrue, text, sp)
	case "false":
		lx.emit(TokenFalse, text, sp)
	case "null":
		lx.emit(TokenNull, text, sp)
	default:
		lx.emit(TokenIdent, text, sp)
	}
}
