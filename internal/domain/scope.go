// Package domain provides the persistent entities of the crawl frontier:
// jobs, sites, and pages.
package domain

// Scope describes the boundary of a Site: a SURT prefix a candidate URL
// must extend to be in scope, and an optional hop limit.
//
// The persisted form keeps the same shape as a map[string]any (see
// Site.ScopeMap) so that forward-compatible extra keys round-trip through
// storage untouched, per the Design Notes' "keep the persisted form as a
// keyed map" recommendation.
type Scope struct {
	Surt    string `json:"surt"`
	MaxHops *int   `json:"max_hops,omitempty"`
}

// HasMaxHops reports whether a hop limit is configured.
func (s Scope) HasMaxHops() bool {
	return s.MaxHops != nil
}
