// Package jsonpointer implements RFC 6901 JSON Pointer tokenization built
// on github.com/kaptinlin/jsonpointer (the same library $ref resolution
// uses for JSON-Pointer navigation), plus a glob extension
// ("JSON-Pointer-plus") for the wildcard path matching the document-path
// navigation and completion services need.
package jsonpointer

import (
	"regexp"
	"strings"

	upstream "github.com/kaptinlin/jsonpointer"
)

// Parse splits a JSON Pointer into its unescaped reference tokens (~0 -> ~,
// ~1 -> /), delegating to the upstream library.
func Parse(pointer string) []string {
	return upstream.Parse(pointer)
}

// Escape encodes a single reference token for embedding in a pointer.
func Escape(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}

// Join builds a pointer string from unescaped tokens.
func Join(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(Escape(t))
	}
	return b.String()
}

// IsGlobToken reports whether a pointer token carries glob metacharacters
// ('*' or '?', unescaped).
func IsGlobToken(token string) bool {
	for i := 0; i < len(token); i++ {
		switch token[i] {
		case '*', '?':
			return true
		case '\\':
			i++
		}
	}
	return false
}

// CompileGlobToken compiles a single glob-extended pointer token into an
// anchored regular expression: '*' matches any run of characters, '?'
// matches exactly one, and '\*'/'\?' match the literal character.
func CompileGlobToken(token string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c == '\\' && i+1 < len(token) && (token[i+1] == '*' || token[i+1] == '?'):
			b.WriteString(regexp.QuoteMeta(string(token[i+1])))
			i++
		case c == '*':
			b.WriteString(".*")
		case c == '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteByte('$')
	return regexp.Compile(b.String())
}

// MatchToken reports whether a literal key/index matches a (possibly glob)
// pointer token.
func MatchToken(token, literal string) bool {
	if !IsGlobToken(token) {
		return token == literal
	}
	re, err := CompileGlobToken(token)
	if err != nil {
		return false
	}
	return re.MatchString(literal)
}
