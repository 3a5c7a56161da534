package kson

import "errors"

// Sentinel errors naming programmer-error conditions. No function in this
// package returns any of them; the package's own entry points report
// problems through Diagnostics.
var (
	// ErrMaxNestingExceeded names a tripped nesting guard. The parser
	// reports that condition as a MAX_NESTING_LEVEL_EXCEEDED diagnostic and
	// continues, see parser.go.
	ErrMaxNestingExceeded = errors.New("kson: max nesting level exceeded")

	// ErrEmptySource names a zero-length input. Parse reports blank input
	// as a BLANK_SOURCE diagnostic.
	ErrEmptySource = errors.New("kson: empty source")

	// ErrNotAnEmbed names a value that is neither an embed block nor its
	// object form.
	ErrNotAnEmbed = errors.New("kson: value is not an embed block")

	// ErrUnsupportedTarget names a value tree construct that a target
	// format cannot express.
	ErrUnsupportedTarget = errors.New("kson: value cannot be represented in target format")
)
