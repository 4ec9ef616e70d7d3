package frontier

import (
	"context"
	"errors"

	"github.com/crawlfrontier/frontier/internal/canon"
	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/priority"
	"github.com/crawlfrontier/frontier/internal/robots"
	"github.com/crawlfrontier/frontier/internal/scope"
)

// OutlinkCounts tallies the disposition of a batch of discovered URLs,
// logged once per call to ScopeAndScheduleOutlinks.
type OutlinkCounts struct {
	Added    int
	Updated  int
	Rejected int
	Blocked  int
}

// ScopeAndScheduleOutlinks processes every URL discovered on
// parentPage: out-of-scope URLs are rejected, robots-disallowed URLs
// are blocked, and the rest are inserted as new pages or, if the page
// already exists (rediscovery), have their priority boosted by
// addition.
func (f *Frontier) ScopeAndScheduleOutlinks(
	ctx context.Context,
	site *domain.Site,
	parentPage *domain.Page,
	urls []string,
) (OutlinkCounts, error) {
	var counts OutlinkCounts

	for _, rawURL := range urls {
		if !scope.IsInScope(site, rawURL, parentPage) {
			counts.Rejected++
			continue
		}

		permitted, err := f.robots.IsPermitted(ctx, site, rawURL)
		if err != nil {
			if errors.Is(err, robots.ErrReachedLimit) {
				if limitErr := f.ReachedLimit(ctx, site, domain.JSONMap{"url": rawURL}); limitErr != nil {
					return counts, limitErr
				}
				continue
			}
			f.log.Warn("robots check failed, treating as blocked", "url", rawURL, "error", err.Error())
			counts.Blocked++
			continue
		}
		if !permitted {
			counts.Blocked++
			continue
		}

		if err := f.scheduleOutlink(ctx, site, parentPage, rawURL, &counts); err != nil {
			return counts, err
		}
	}

	f.log.Info("scheduled outlinks",
		"site_id", site.ID, "added", counts.Added, "updated", counts.Updated,
		"rejected", counts.Rejected, "blocked", counts.Blocked,
	)

	return counts, nil
}

func (f *Frontier) scheduleOutlink(
	ctx context.Context,
	site *domain.Site,
	parentPage *domain.Page,
	rawURL string,
	counts *OutlinkCounts,
) error {
	hops := parentPage.HopsFromSeed + 1
	childPriority := priority.Calculate(hops, canon.Canonicalize(rawURL))

	existing, err := f.store.Pages().Get(ctx, domain.PageID(site.ID, rawURL))
	if err != nil {
		return opErr("scope_and_schedule_outlinks", site.ID, err)
	}

	if existing != nil {
		existing.Priority += childPriority
		if err := f.UpdatePage(ctx, existing); err != nil {
			return err
		}
		counts.Updated++
		return nil
	}

	child := domain.NewPage(site.ID, site.JobID, rawURL, hops, parentPage.ID, childPriority)
	if err := f.NewPage(ctx, child); err != nil {
		return err
	}
	counts.Added++
	return nil
}
