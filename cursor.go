package kson

import "unicode/utf8"

// span is the internal, offset-carrying location used by tokens and CST
// nodes. Public APIs (Diagnostic, Location) downgrade a span to a Range when
// byte offsets aren't needed by the caller.
type span struct {
	StartLine   int
	StartCol    int
	EndLine     int
	EndCol      int
	StartOffset int
	EndOffset   int
}

// toRange drops the byte-offset fields for public consumption.
func (s span) toRange() Range {
	return Range{StartLine: s.StartLine, StartCol: s.StartCol, EndLine: s.EndLine, EndCol: s.EndCol}
}

// cover returns the smallest span containing both s and other.
func (s span) cover(other span) span {
	result := s
	if other.StartOffset < result.StartOffset {
		result.StartLine, result.StartCol, result.StartOffset = other.StartLine, other.StartCol, other.StartOffset
	}
	if other.EndOffset > result.EndOffset {
		result.EndLine, result.EndCol, result.EndOffset = other.EndLine, other.EndCol, other.EndOffset
	}
	return result
}

// cursor walks a source string rune-by-rune, tracking 0-based line/column
// and byte offset. Lines are counted at '\n'; '\r\n' is treated as a single
// line break by the lexer skipping the bare '\r'.
type cursor struct {
	src    string
	offset int
	line   int
	col    int
}

func newCursor(src string) *cursor {
	return &cursor{src: src}
}

// pos returns the current position as the start of a zero-width span.
func (c *cursor) pos() span {
	return span{
		StartLine: c.line, StartCol: c.col, EndLine: c.line, EndCol: c.col,
		StartOffset: c.offset, EndOffset: c.offset,
	}
}

// atEnd reports whether the cursor has consumed the whole source.
func (c *cursor) atEnd() bool {
	return c.offset >= len(c.src)
}

// peek returns the rune at the cursor without advancing, or utf8.RuneError
// (size 0) at end of input.
func (c *cursor) peek() (rune, int) {
	if c.atEnd() {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRuneInString(c.src[c.offset:])
	return r, size
}

// peekAt returns the rune `ahead` runes past the current one, decoding
// forward; used for short lookahead (embed delimiter runs, "- " detection).
func (c *cursor) peekAt(ahead int) (rune, int) {
	off := c.offset
	var r rune
	var size int
	for i := 0; i <= ahead; i++ {
		if off >= len(c.src) {
			return utf8.RuneError, 0
		}
		r, size = utf8.DecodeRuneInString(c.src[off:])
		if i < ahead {
			off += size
		}
	}
	return r, size
}

// advance consumes and returns the current rune, updating line/col/offset.
func (c *cursor) advance() (rune, bool) {
	r, size := c.peek()
	if size == 0 {
		return 0, false
	}
	c.offset += size
	if r == '\n' {
		c.line++
		c.col = 0
	} else {
		c.col++
	}
	return r, true
}

// remaining returns the unconsumed suffix of the source.
func (c *cursor) remaining() string {
	return c.src[c.offset:]
}
