package kson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONPreservesMemberOrder(t *testing.T) {
	doc := Parse("z: 1\na: 2\nm: 3\n", DefaultParseConfig())
	out, err := ToJSON(doc.Value, JSONConfig{})
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2,"m":3}`, out)
}

func TestToJSONEmbedDroppedWithoutRetainTags(t *testing.T) {
	e := &Embed{Content: "hello"}
	v := &Value{Kind: ValueEmbed, Embed: e}
	out, err := ToJSON(v, JSONConfig{})
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, out)
}

func TestToJSONEmbedRetainedAsObject(t *testing.T) {
	tag := "text"
	e := &Embed{Tag: &tag, Content: "hello"}
	v := &Value{Kind: ValueEmbed, Embed: e}
	out, err := ToJSON(v, JSONConfig{RetainEmbedTags: true})
	require.NoError(t, err)
	assert.Contains(t, out, `"embedTag":"text"`)
	assert.Contains(t, out, `"embedContent":"hello"`)
}

func TestToYAMLPreservesMemberOrder(t *testing.T) {
	doc := Parse("z: 1\na: 2\n", DefaultParseConfig())
	out, err := ToYAML(doc.Value, YAMLConfig{})
	require.NoError(t, err)
	zIdx := indexOf(out, "z:")
	aIdx := indexOf(out, "a:")
	assert.True(t, zIdx < aIdx)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
