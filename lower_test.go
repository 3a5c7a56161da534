package kson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowerObjectMembers(t *testing.T) {
	doc := Parse(`a: 1
b: "x"
`, DefaultParseConfig())
	require.Empty(t, doc.Diagnostics)
	require.Equal(t, ValueObject, doc.Value.Kind)
	v, ok := doc.Value.Object.Get("a")
	require.True(t, ok)
	assert.Equal(t, ValueNumber, v.Kind)
	assert.Equal(t, int64(1), v.Num.Int)
}

func TestLowerDuplicateKeysPreserved(t *testing.T) {
	doc := Parse("a: 1\na: 2\n", DefaultParseConfig())
	require.Equal(t, 2, len(doc.Value.Object.Members))
	v, ok := doc.Value.Object.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Num.Int, "first-match-wins lookup")
}

func TestLowerStringEscapes(t *testing.T) {
	doc := Parse(`s: "a\nb"`, DefaultParseConfig())
	v, _ := doc.Value.Object.Get("s")
	assert.Equal(t, "a\nb", v.Str)
}

func TestLowerUnicodeEscape(t *testing.T) {
	doc := Parse("s: \"\\u0041\"", DefaultParseConfig())
	v, _ := doc.Value.Object.Get("s")
	assert.Equal(t, "A", v.Str)
}

func TestLowerList(t *testing.T) {
	doc := Parse("[1, 2, 3]", DefaultParseConfig())
	require.Equal(t, ValueList, doc.Value.Kind)
	assert.Len(t, doc.Value.List, 3)
}

func TestLowerCommentAttachment(t *testing.T) {
	src := "# leading\na: 1 # trailing\n"
	doc := Parse(src, DefaultParseConfig())
	m := doc.Value.Object.Members[0]
	assert.Equal(t, []string{" leading"}, m.LeadingComments)
	assert.Equal(t, []string{" trailing"}, m.Value.TrailingComments)
}
