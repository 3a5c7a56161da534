package kson

// ParseConfig bundles the grammar parser's configuration for the public
// Parse entry point.
type ParseConfig struct {
	Parser ParserConfig
}

// DefaultParseConfig returns the recommended default configuration.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{Parser: DefaultParserConfig()}
}

// Document is the result of parsing KSON source: the lossless concrete
// syntax tree, the lowered value tree, and every diagnostic collected along
// the way).
type Document struct {
	CST         *CstNode
	Value       *Value
	Diagnostics []Diagnostic
}

// Parse tokenizes, parses, and lowers src in one pass. Parsing never
// aborts: Document.Value is always populated (possibly as a ValueError
// node), and every malformed construct is reported through Diagnostics
// rather than by returning an error. Errors are data, not control flow.
func Parse(src string, cfg ParseConfig) Document {
	if cfg.Parser.MaxNestingLevel <= 0 {
		cfg = DefaultParseConfig()
	}
	res := ParseCST(src, cfg.Parser)
	return Document{
		CST:         res.Root,
		Value:       Lower(res.Root),
		Diagnostics: res.Diagnostics,
	}
}
