// Package priority computes scheduling priority for frontier pages.
package priority

import "github.com/crawlfrontier/frontier/internal/canon"

// SeedPriority is the explicit priority given to a site's seed page so
// that it dominates any page discovered later.
const SeedPriority = 1000

// hopWeight and slashWeight bound how much hop distance and path depth
// can contribute to a page's priority.
const (
	hopWeight   = 10
	slashWeight = 6
)

// Calculate returns priority(page) = max(0, 10-hops) + max(0, 6-slashes),
// where slashes is the number of '/' in the page's canonical URL path.
// Higher is better. Calculate is used only at insertion time; an existing
// page's priority grows by addition when it is rediscovered (see the
// frontier's outlink scheduling).
func Calculate(hopsFromSeed int, canonURL string) int {
	return max(0, hopWeight-hopsFromSeed) + max(0, slashWeight-canon.SlashCount(canonURL))
}
