package kson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexSimpleTokens(t *testing.T) {
	toks, diags := Lex(`{a: 1, b: "x"}`)
	require.Empty(t, diags)
	var kinds []TokenKind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenBraceL, TokenIdent, TokenColon, TokenNumber, TokenComma,
		TokenIdent, TokenColon, TokenString, TokenBraceR, TokenEOF,
	}, kinds)
}

func TestLexDashBeginsListElement(t *testing.T) {
	toks, _ := Lex("- 1\n- 2")
	assert.Equal(t, TokenListDash, toks[0].Kind)
	assert.Equal(t, TokenNumber, toks[1].Kind)
	assert.Equal(t, TokenListDash, toks[2].Kind)
}

func TestLexNegativeNumberNotDash(t *testing.T) {
	toks, _ := Lex("-5")
	require.Len(t, toks, 2)
	assert.Equal(t, TokenNumber, toks[0].Kind)
	assert.Equal(t, "-5", toks[0].Text)
}

func TestLexDanglingExponent(t *testing.T) {
	toks, diags := Lex("1e")
	require.Len(t, diags, 1)
	assert.Equal(t, KindDanglingExpIndicator, diags[0].Kind)
	assert.Equal(t, TokenNumber, toks[0].Kind)
}

func TestLexUnterminatedString(t *testing.T) {
	_, diags := Lex(`"abc`)
	require.Len(t, diags, 1)
	assert.Equal(t, KindStringNoClose, diags[0].Kind)
}

func TestLexStringBadEscape(t *testing.T) {
	_, diags := Lex(`"a\qb"`)
	require.Len(t, diags, 1)
	assert.Equal(t, KindStringBadEscape, diags[0].Kind)
}

func TestLexComment(t *testing.T) {
	toks, diags := Lex("a: 1 # trailing\n")
	require.Empty(t, diags)
	var found bool
	for _, tk := range toks {
		if tk.Kind == TokenComment {
			found = true
			assert.Equal(t, "# trailing", tk.Text)
		}
	}
	assert.True(t, found)
}

func TestLexEmbedBlock(t *testing.T) {
	src := "%%\nhello\n%%%\n"
	toks, diags := Lex(src)
	require.Empty(t, diags)
	var kinds []TokenKind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Contains(t, kinds, TokenEmbedOpenDelim)
	assert.Contains(t, kinds, TokenEmbedContent)
	assert.Contains(t, kinds, TokenEmbedCloseDelim)
}

func TestLexEmbedNoClose(t *testing.T) {
	_, diags := Lex("%%\nhello\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindEmbedBlockNoClose, diags[0].Kind)
}

func TestLexKeywords(t *testing.T) {
	toks, _ := Lex("true false null")
	assert.Equal(t, TokenTrue, toks[0].Kind)
	assert.Equal(t, TokenFalse, toks[1].Kind)
	assert.Equal(t, TokenNull, toks[2].Kind)
}

func TestLexObjectEndDot(t *testing.T) {
	toks, _ := Lex("a: 1\n.")
	var found bool
	for _, tk := range toks {
		if tk.Kind == TokenObjectEndDot {
			found = true
		}
	}
	assert.True(t, found)
}
