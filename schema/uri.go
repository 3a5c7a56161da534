package schema

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// resolveURIRef resolves a relative $id against a base URI, falling back to
// returning ref unchanged when either side fails to parse. This is a best
// effort, not full RFC 3986 resolution — see DESIGN.md.
func resolveURIRef(baseURI, ref string) string {
	if ref == "" {
		return baseURI
	}
	if isAbsoluteURI(ref) {
		return ref
	}
	if baseURI == "" {
		return ref
	}
	base, err := url.Parse(baseURI)
	if err != nil || base.Scheme == "" {
		return ref
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(rel).String()
}

func isAbsoluteURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

// baseURIOf derives the directory-level base URI an $id establishes for
// resolving sibling relative references.
func baseURIOf(id string) string {
	if id == "" {
		return ""
	}
	u, err := url.Parse(id)
	if err != nil || u.Scheme == "" {
		return ""
	}
	if strings.HasSuffix(u.Path, "/") {
		return u.String()
	}
	u.Path = path.Dir(u.Path)
	if u.Path == "." || u.Path == "" {
		u.Path = "/"
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

func splitRef(ref string) (base, anchor string) {
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return ref, ""
}

func compileRegexp(pattern string) *regexp.Regexp {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}
