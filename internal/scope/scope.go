// Package scope decides whether a candidate URL belongs to a site, and
// keeps a site's scope prefix up to date across seed redirects.
package scope

import (
	"strings"

	"github.com/crawlfrontier/frontier/internal/canon"
	"github.com/crawlfrontier/frontier/internal/domain"
)

// IsInScope reports whether url belongs to site, given the page it was
// discovered from (nil for a seed).
//
// A parse failure, an unsupported scheme, or a site scope that has not
// yet been widened to cover the URL are all treated alike: out of scope.
// None of these are fatal; callers log and move on.
func IsInScope(site *domain.Site, url string, parentPage *domain.Page) bool {
	sc := site.Scope()

	if parentPage != nil && sc.HasMaxHops() && parentPage.HopsFromSeed >= *sc.MaxHops {
		return false
	}

	if s := canon.Scheme(url); s != "http" && s != "https" {
		return false
	}

	canonURL := canon.Canonicalize(url)
	if canonURL == "" {
		return false
	}

	return strings.HasPrefix(canonURL, sc.Surt)
}

// NoteSeedRedirect updates site's scope prefix when a seed-hop page
// redirects off the domain the scope was originally derived from.
//
// If the redirect target's canonical prefix already extends the current
// scope, nothing changes: the redirect stayed within scope. Otherwise the
// scope is widened to the redirect's prefix, so a seed that bounces
// through a login or CDN host doesn't take the whole site out of scope.
func NoteSeedRedirect(site *domain.Site, url string) {
	newSurt := canon.Canonicalize(url)
	if newSurt == "" {
		return
	}

	sc := site.Scope()
	if strings.HasPrefix(newSurt, sc.Surt) {
		return
	}

	sc.Surt = newSurt
	site.SetScope(sc)
}
