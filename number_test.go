package kson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumberInteger(t *testing.T) {
	n := ParseNumber("42")
	assert.Equal(t, NumberInteger, n.Kind)
	assert.Equal(t, int64(42), n.Int)
}

func TestParseNumberDecimal(t *testing.T) {
	n := ParseNumber("3.14")
	assert.Equal(t, NumberDecimal, n.Kind)
	assert.InDelta(t, 3.14, n.Decimal, 1e-9)
}

func TestParseNumberExponent(t *testing.T) {
	n := ParseNumber("1e3")
	assert.Equal(t, NumberDecimal, n.Kind)
	assert.InDelta(t, 1000.0, n.Decimal, 1e-9)
}

func TestParseNumberDanglingExponentIgnoresIndicator(t *testing.T) {
	n := ParseNumber("1e")
	assert.Equal(t, NumberDecimal, n.Kind)
	assert.Equal(t, 1.0, n.Decimal)
}

func TestNumberEqualAcrossRepresentations(t *testing.T) {
	a := ParseNumber("1")
	b := ParseNumber("1.0")
	assert.True(t, a.Equal(b))
}

func TestNumberIsIntegral(t *testing.T) {
	assert.True(t, ParseNumber("1.0").IsIntegral())
	assert.False(t, ParseNumber("1.5").IsIntegral())
	assert.True(t, ParseNumber("7").IsIntegral())
}
