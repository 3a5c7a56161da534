package kson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBraceFreeRootObject(t *testing.T) {
	res := ParseCST("a: 1\nb: 2\n", DefaultParserConfig())
	require.Empty(t, res.Diagnostics)
	require.NotNil(t, res.Root)
	assert.Equal(t, CstObject, res.Root.Kind)
	assert.Len(t, res.Root.Children, 2)
}

func TestParseBracketList(t *testing.T) {
	res := ParseCST("[1, 2, 3]", DefaultParserConfig())
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, CstBracketList, res.Root.Kind)
	assert.Len(t, res.Root.Children, 3)
}

func TestParseDashList(t *testing.T) {
	res := ParseCST("- 1\n- 2\n- 3\n", DefaultParserConfig())
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, CstDashList, res.Root.Kind)
	assert.Len(t, res.Root.Children, 3)
}

func TestParseDashListExplicitEnd(t *testing.T) {
	res := ParseCST("- 1\n- 2\n=\n", DefaultParserConfig())
	assert.Equal(t, CstDashList, res.Root.Kind)
	assert.Len(t, res.Root.Children, 2)
}

func TestParseNestedBraceFreeObjectTerminatedByDot(t *testing.T) {
	src := "outer:\n  inner: 1\n  .\n"
	res := ParseCST(src, DefaultParserConfig())
	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Root.Children, 1)
}

func TestParseBlankSource(t *testing.T) {
	res := ParseCST("   \n\t\n", DefaultParserConfig())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, KindBlankSource, res.Diagnostics[0].Kind)
}

func TestParseTrailingInputAfterRoot(t *testing.T) {
	res := ParseCST("1 2", DefaultParserConfig())
	var found bool
	for _, d := range res.Diagnostics {
		if d.Kind == KindEOFNotReached {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseDeeplyNestedUnclosedProducesSingleDiagnostic(t *testing.T) {
	cfg := ParserConfig{MaxNestingLevel: 8}
	src := strings.Repeat("a: {", 20)
	res := ParseCST(src, cfg)
	count := 0
	for _, d := range res.Diagnostics {
		if d.Kind == KindMaxNestingLevelExceeded {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestParseAngleList(t *testing.T) {
	res := ParseCST("< - 1 - 2 >", DefaultParserConfig())
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, CstAngleList, res.Root.Kind)
	assert.Len(t, res.Root.Children, 2)
}

func TestParseObjectKeyNoValue(t *testing.T) {
	res := ParseCST("a:\n", DefaultParserConfig())
	var found bool
	for _, d := range res.Diagnostics {
		if d.Kind == KindObjectKeyNoValue {
			found = true
		}
	}
	assert.True(t, found)
}
