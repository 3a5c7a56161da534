package kson

import (
	"strconv"
	"strings"
)

// NumberKind distinguishes the two Number representations retained by the
// value tree: an Integer carries an int64 magnitude, a Decimal
// carries a float64 magnitude plus the original lexeme for exact
// re-emission.
type NumberKind int

const (
	NumberInteger NumberKind = iota
	NumberDecimal
)

// Number is the classified numeric value tree node payload.
type Number struct {
	Kind    NumberKind
	Int     int64
	Decimal float64
	Lexeme  string
}

// ParseNumber classifies a lexeme: a lexeme with no
// fractional or exponent part that fits in an int64 becomes an Integer;
// everything else (any '.' or exponent, e.g. "1e3", or an integer lexeme
// that overflows int64) becomes a Decimal. A decimal whose fractional
// part is entirely zero (e.g. "1.0") still satisfies integer constraints at
// the schema-validation layer, but is retained here as NumberDecimal so its
// lexeme round-trips exactly.
func ParseNumber(lexeme string) Number {
	hasFraction := strings.ContainsRune(lexeme, '.')
	hasExponent := strings.ContainsAny(lexeme, "eE")

	if !hasFraction && !hasExponent {
		if i, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
			return Number{Kind: NumberInteger, Int: i, Lexeme: lexeme}
		}
	}

	f, err := strconv.ParseFloat(normalizeForFloat(lexeme), 64)
	if err != nil {
		// Unparseable numeric lexeme (e.g. a magnitude out of float64
		// range; a dangling exponent indicator was already trimmed by
		// normalizeForFloat). Fall back to 0 so downstream passes have a
		// value to work with.
		return Number{Kind: NumberDecimal, Decimal: 0, Lexeme: lexeme}
	}
	return Number{Kind: NumberDecimal, Decimal: f, Lexeme: lexeme}
}

// normalizeForFloat trims a dangling "e"/"e-"/"e+" with no digits so
// strconv.ParseFloat doesn't choke on a lexeme the lexer already flagged as
// DANGLING_EXP_INDICATOR.
func normalizeForFloat(lexeme string) string {
	idx := strings.IndexAny(lexeme, "eE")
	if idx < 0 {
		return lexeme
	}
	rest := lexeme[idx+1:]
	rest = strings.TrimLeft(rest, "+-")
	if rest == "" {
		return lexeme[:idx]
	}
	return lexeme
}

// IsIntegral reports whether the number represents a whole-number
// magnitude, regardless of NumberKind — used by the schema validator's
// "integer" type check (a Decimal like 1.0 satisfies it).
func (n Number) IsIntegral() bool {
	switch n.Kind {
	case NumberInteger:
		return true
	default:
		return n.Decimal == float64(int64(n.Decimal))
	}
}

// Float64 returns the number's IEEE-754 double projection, used for
// cross-representation equality and schema numeric comparisons.
func (n Number) Float64() float64 {
	if n.Kind == NumberInteger {
		return float64(n.Int)
	}
	return n.Decimal
}

// Equal compares numeric values: integers and decimals compare equal when
// their IEEE-754-double projections are equal.
func (n Number) Equal(other Number) bool {
	return n.Float64() == other.Float64()
}
