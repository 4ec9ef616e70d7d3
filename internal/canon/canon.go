// Package canon produces a sort-friendly canonical form of a URL — a SURT
// (Sort-friendly URI Reordering Transform) — used for scope prefix
// matching and page identity.
//
// This is standard-library only: scope matching needs a
// prefix-comparable string, which a content-hash based normalizer
// cannot provide. See DESIGN.md for the justification.
package canon

import (
	"net/url"
	"strings"
)

// Canonicalize returns the SURT form of rawURL, e.g.
// "http://example.com/a?x=1#y" -> "http://(com,example,)/a". Query and
// fragment are stripped before canonicalization. Canonicalize is pure,
// deterministic, and total: on parse failure it returns "", the
// distinguished empty string callers must treat as out of scope.
func Canonicalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}

	scheme := strings.ToLower(u.Scheme)
	host := reverseHost(strings.ToLower(u.Hostname()))

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://(")
	b.WriteString(host)
	b.WriteString(",)")
	b.WriteString(u.EscapedPath())

	return b.String()
}

// Scheme returns the lowercased scheme of rawURL, or "" on parse failure.
func Scheme(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

// reverseHost turns "www.example.com" into "com,example,www" so that
// sibling and child hosts sort adjacently when compared as plain strings.
func reverseHost(host string) string {
	labels := strings.Split(host, ".")
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return strings.Join(labels, ",")
}

// SlashCount returns the number of '/' characters in a canonical URL's
// path portion (the part after the SURT authority component), used by
// the priority function. Counting only the path avoids the scheme's "//"
// and the reversed-host parens inflating the count.
func SlashCount(canonURL string) int {
	if i := strings.Index(canonURL, ")"); i >= 0 {
		return strings.Count(canonURL[i+1:], "/")
	}
	return strings.Count(canonURL, "/")
}
