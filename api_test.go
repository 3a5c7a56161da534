package kson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNeverErrors(t *testing.T) {
	doc := Parse("{ broken", DefaultParseConfig())
	require.NotNil(t, doc.Value)
	assert.NotEmpty(t, doc.Diagnostics)
}

func TestParseDefaultsAppliedWhenZeroValue(t *testing.T) {
	doc := Parse("a: 1", ParseConfig{})
	require.Empty(t, doc.Diagnostics)
	v, ok := doc.Value.Object.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Num.Int)
}

func TestParseEmbedIsomorphismRoundTrip(t *testing.T) {
	src := "doc:\n  %%js\n  console.log(1)\n  %%%\n.\n"
	doc := Parse(src, DefaultParseConfig())
	require.Empty(t, doc.Diagnostics)
	v, ok := doc.Value.Object.Get("doc")
	require.True(t, ok)
	require.Equal(t, ValueEmbed, v.Kind)
	assert.Equal(t, "console.log(1)", v.Embed.Content)
	require.NotNil(t, v.Embed.Tag)
	assert.Equal(t, "js", *v.Embed.Tag)

	asObject := ObjectFromEmbed(v.Embed, v.Location)
	back, ok := EmbedFromObject(asObject.Object)
	require.True(t, ok)
	assert.Equal(t, v.Embed.Content, back.Content)
}
