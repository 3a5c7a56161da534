package kson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEmbedContentDedents(t *testing.T) {
	raw := "\n  line one\n  line two\n"
	got := decodeEmbedContent(raw, '%')
	assert.Equal(t, "line one\nline two", got)
}

func TestEscapeUnescapeDelimRunsRoundTrip(t *testing.T) {
	original := "%%content%%"
	escaped := escapeDelimRuns(original, '%')
	assert.NotContains(t, escaped, "%%")
	unescaped := unescapeDelimRuns(escaped, '%')
	assert.Equal(t, original, unescaped)
}

func TestChooseDelimiterPrefersPercentOnTie(t *testing.T) {
	assert.Equal(t, '%', ChooseDelimiter("plain text"))
}

func TestChooseDelimiterPicksFewerEscapes(t *testing.T) {
	assert.Equal(t, '$', ChooseDelimiter("has %% but no dollar runs"))
}

func TestEncodeEmbedCloseRunLongerThanContentRun(t *testing.T) {
	e := &Embed{Content: "a %% b", Delimiter: '%'}
	out := EncodeEmbed(e, "")
	assert.Contains(t, out, "%%%\n")
}

func TestEmbedObjectIsomorphism(t *testing.T) {
	tag := "json"
	meta := "note"
	e := &Embed{Tag: &tag, Metadata: &meta, Content: "hello"}
	obj := ObjectFromEmbed(e, Location{})
	require.Equal(t, ValueObject, obj.Kind)

	back, ok := EmbedFromObject(obj.Object)
	require.True(t, ok)
	assert.Equal(t, e.Content, back.Content)
	require.NotNil(t, back.Tag)
	assert.Equal(t, tag, *back.Tag)
	require.NotNil(t, back.Metadata)
	assert.Equal(t, meta, *back.Metadata)
}

func TestEmbedFromObjectRejectsUnknownKeys(t *testing.T) {
	members := []Member{
		{Key: EmbedContentKey, Value: &Value{Kind: ValueString, Str: "x"}},
		{Key: "somethingElse", Value: &Value{Kind: ValueString, Str: "y"}},
	}
	o := newObjectValue(members)
	_, ok := EmbedFromObject(o)
	assert.False(t, ok)
}
