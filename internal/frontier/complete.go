package frontier

import (
	"context"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/scope"
)

// CompletedPage records that page was processed once: increments its
// brozzle_count and clears claimed. If page is the seed (hops 0) and a
// redirect was recorded, the site's scope is widened to follow it.
//
// Callers must invoke this exactly once per successful processing: a
// second call re-increments brozzle_count, which is harmless to the
// state machine but would misrepresent how many times the page was
// actually fetched.
func (f *Frontier) CompletedPage(ctx context.Context, site *domain.Site, page *domain.Page) error {
	page.BrozzleCount++
	page.Claimed = false

	if page.HopsFromSeed == 0 && page.RedirectURL != "" {
		scope.NoteSeedRedirect(site, page.RedirectURL)
		if err := f.UpdateSite(ctx, site); err != nil {
			return err
		}
	}

	return f.UpdatePage(ctx, page)
}

// DisclaimSite releases site back to the pool. If page is non-nil, it
// is an unprocessed page being returned unclaimed alongside the site
// (the worker failed before completing it). If page is nil and the
// site has no more outstanding pages, the site is finished.
//
// Callers must call this exactly once per successful ClaimSite, even
// when processing failed.
func (f *Frontier) DisclaimSite(ctx context.Context, site *domain.Site, page *domain.Page) error {
	site.Claimed = false
	site.LastDisclaimed = float64(f.now().Unix())

	if page != nil {
		page.Claimed = false
		if err := f.UpdatePage(ctx, page); err != nil {
			return err
		}
		return f.UpdateSite(ctx, site)
	}

	outstanding, err := f.HasOutstandingPages(ctx, site)
	if err != nil {
		return err
	}
	if !outstanding {
		return f.finished(ctx, site, domain.SiteStatusFinished)
	}

	return f.UpdateSite(ctx, site)
}
