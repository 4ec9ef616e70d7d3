package frontier

import "context"

// SweepResult tallies how many abandoned claims Sweep cleared.
type SweepResult struct {
	SitesReclaimed int
	PagesReclaimed int
}

// Sweep reclaims sites and pages whose claim has outlived its lease:
// a worker that claimed one and then crashed or was killed without
// calling DisclaimSite/CompletedPage leaves claimed=true forever
// otherwise, since the core has no in-process notion of a dead worker.
//
// This is additive to the claim/disclaim protocol, not a replacement
// for it: a well-behaved worker never triggers Sweep for its own
// claims, because it disclaims before its lease would expire.
func (f *Frontier) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	asOf := float64(f.now().Unix())

	sites, err := f.store.Sites().ExpiredClaims(ctx, asOf)
	if err != nil {
		return result, opErr("sweep", "sites", err)
	}
	for _, site := range sites {
		site.Claimed = false
		site.LastDisclaimed = asOf
		site.ClaimExpiry = 0
		if err := f.UpdateSite(ctx, site); err != nil {
			return result, err
		}
		f.log.Warn("reclaimed abandoned site claim", "site_id", site.ID, "worker_id", site.LastClaimedBy)
		result.SitesReclaimed++
	}

	pages, err := f.store.Pages().ExpiredClaims(ctx, asOf)
	if err != nil {
		return result, opErr("sweep", "pages", err)
	}
	for _, page := range pages {
		page.Claimed = false
		page.ClaimExpiry = 0
		if err := f.UpdatePage(ctx, page); err != nil {
			return result, err
		}
		f.log.Warn("reclaimed abandoned page claim", "page_id", page.ID, "worker_id", page.LastClaimedBy)
		result.PagesReclaimed++
	}

	return result, nil
}
