package jsonpointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBasic(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "0"}, Parse("/a/b/0"))
}

func TestEscapeJoinRoundTrip(t *testing.T) {
	tokens := []string{"a/b", "c~d"}
	p := Join(tokens)
	assert.Equal(t, "/a~1b/c~0d", p)
}

func TestIsGlobToken(t *testing.T) {
	assert.True(t, IsGlobToken("item_*"))
	assert.True(t, IsGlobToken("item_?"))
	assert.False(t, IsGlobToken("item_1"))
	assert.False(t, IsGlobToken(`item_\*`))
}

func TestMatchTokenGlob(t *testing.T) {
	assert.True(t, MatchToken("item_*", "item_42"))
	assert.False(t, MatchToken("item_*", "other_42"))
	assert.True(t, MatchToken("item_?", "item_1"))
	assert.False(t, MatchToken("item_?", "item_12"))
}

func TestMatchTokenLiteral(t *testing.T) {
	assert.True(t, MatchToken("exact", "exact"))
	assert.False(t, MatchToken("exact", "other"))
}
