package frontier

import (
	"context"
	"errors"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/store"
)

// ClaimSite claims the ACTIVE, unclaimed site that has been idle
// longest, on behalf of workerID.
//
// A site whose time limit has elapsed is finished as a side effect and
// skipped, and the search continues: a time-limited site is never
// handed back as a claim. Returns ErrNothingToClaim when no claimable
// site remains.
func (f *Frontier) ClaimSite(ctx context.Context, workerID string) (*domain.Site, error) {
	for {
		before, after, err := f.store.Sites().ClaimNext(ctx, workerID)
		if err != nil {
			if errors.Is(err, store.ErrNothingToClaim) {
				return nil, ErrNothingToClaim
			}
			return nil, opErr("claim_site", workerID, err)
		}

		if before.TimeLimit != nil && *before.TimeLimit > 0 {
			elapsed := f.now().Unix() - int64(before.StartTime)
			if elapsed > *before.TimeLimit {
				if finishErr := f.finished(ctx, after, domain.SiteStatusFinishedTimeLimit); finishErr != nil {
					return nil, finishErr
				}
				continue
			}
		}

		after.ClaimExpiry = float64(f.now().Add(f.leaseDuration).Unix())
		if err := f.UpdateSite(ctx, after); err != nil {
			return nil, err
		}
		return after, nil
	}
}

// ClaimPage claims the highest-priority unclaimed, unprocessed page
// belonging to site, on behalf of workerID. Returns ErrNothingToClaim
// when site currently has no claimable page.
func (f *Frontier) ClaimPage(ctx context.Context, site *domain.Site, workerID string) (*domain.Page, error) {
	page, err := f.store.Pages().ClaimNext(ctx, site.ID, workerID)
	if err != nil {
		if errors.Is(err, store.ErrNothingToClaim) {
			return nil, ErrNothingToClaim
		}
		return nil, opErr("claim_page", site.ID, err)
	}

	page.ClaimExpiry = float64(f.now().Add(f.leaseDuration).Unix())
	if err := f.UpdatePage(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// HasOutstandingPages reports whether site still has work: any page
// that is claimed-but-unfinished, or unclaimed and unprocessed.
func (f *Frontier) HasOutstandingPages(ctx context.Context, site *domain.Site) (bool, error) {
	ok, err := f.store.Pages().HasOutstanding(ctx, site.ID)
	if err != nil {
		return false, opErr("has_outstanding_pages", site.ID, err)
	}
	return ok, nil
}
