package kson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInlinesShortObject(t *testing.T) {
	doc := Parse("x: {a: 1, b: 2}\n", DefaultParseConfig())
	out := Format(doc.Value, DefaultFormatConfig())
	assert.Equal(t, "x: { a: 1, b: 2 }\n", out)
}

func TestFormatIdempotentWithComments(t *testing.T) {
	src := "# about a\na: 1 # inline note\nb:\n  c: 2\n  .\n"
	doc1 := Parse(src, DefaultParseConfig())
	out1 := Format(doc1.Value, DefaultFormatConfig())

	doc2 := Parse(out1, DefaultParseConfig())
	out2 := Format(doc2.Value, DefaultFormatConfig())

	assert.Equal(t, out1, out2, "formatting a formatted document must be a fixed point")
	require.Equal(t, doc1.Value.Object.Members[0].LeadingComments, doc2.Value.Object.Members[0].LeadingComments)
}

func TestFormatDashListForLongList(t *testing.T) {
	doc := Parse("[aaaaaaaaaa, bbbbbbbbbb, cccccccccc, dddddddddd, eeeeeeeeee, ffffffffff, gggggggggg]", DefaultParseConfig())
	cfg := DefaultFormatConfig()
	cfg.MaxInlineWidth = 20
	out := Format(doc.Value, cfg)
	assert.Contains(t, out, "- aaaaaaaaaa\n")
}

func TestFormatNestedListInsideDashListUsesAngleBrackets(t *testing.T) {
	doc := Parse("- [aaaaaaaaaa, bbbbbbbbbb, cccccccccc, dddddddddd, eeeeeeeeee]\n", DefaultParseConfig())
	cfg := DefaultFormatConfig()
	cfg.MaxInlineWidth = 10
	out := Format(doc.Value, cfg)
	assert.Contains(t, out, "<")
}

func TestFormatStringQuotingPrefersSingleQuote(t *testing.T) {
	assert.Equal(t, "'hello'", formatString("hello"))
	assert.Equal(t, `"it's"`, formatString("it's"))
}

func TestFormatNumberStripsLeadingZerosAndLowercasesExponent(t *testing.T) {
	assert.Equal(t, "1e5", formatNumber(Number{Kind: NumberDecimal, Lexeme: "01E5"}))
}

func TestFormatKeyQuotesReservedWords(t *testing.T) {
	assert.Equal(t, "'true'", formatKey("true"))
	assert.Equal(t, "ident", formatKey("ident"))
}
