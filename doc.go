// Package kson implements KSON, a human-oriented superset of JSON: a single
// surface syntax that accepts JSON verbatim but also admits unquoted
// identifier keys, brace-free root objects, three list forms, explicit
// nesting terminators, comments, and opaque embed blocks.
//
// The package parses source text into a lossless concrete syntax tree and a
// typed value tree, reports structured diagnostics, preserves comments
// through a round trip, and renders JSON and YAML. Schema validation and
// IDE-grade location services live in the kson/schema subpackage.
package kson
