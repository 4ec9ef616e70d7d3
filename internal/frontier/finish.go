package frontier

import (
	"context"
	"reflect"

	"github.com/crawlfrontier/frontier/internal/domain"
)

// finished transitions site to status, persists it, and, when the site
// belongs to a job, checks whether that job is now entirely finished.
func (f *Frontier) finished(ctx context.Context, site *domain.Site, status string) error {
	site.Status = status
	if err := f.UpdateSite(ctx, site); err != nil {
		return err
	}
	if site.JobID == "" {
		return nil
	}
	_, err := f.maybeFinishJob(ctx, site.JobID)
	return err
}

// maybeFinishJob finishes jobID if every site under it has reached a
// terminal status, and reports whether the job is (now, or already)
// finished. When a JobFinishLocker is configured, the check-and-finish
// sequence runs under its per-job lock; losing the race just means
// another worker is already handling it, so that case is reported as
// "not finished here" rather than as an error.
func (f *Frontier) maybeFinishJob(ctx context.Context, jobID string) (bool, error) {
	job, err := f.store.Jobs().Get(ctx, jobID)
	if err != nil {
		return false, opErr("maybe_finish_job", jobID, err)
	}
	if job == nil {
		return false, opErr("maybe_finish_job", jobID, errEntityNotFound)
	}
	if job.IsTerminal() {
		return true, nil
	}

	sites, err := f.store.Sites().ByJobID(ctx, jobID)
	if err != nil {
		return false, opErr("maybe_finish_job", jobID, err)
	}
	for _, site := range sites {
		if !site.IsTerminal() {
			return false, nil
		}
	}

	if f.jobFinishLock != nil {
		ok, release, err := f.jobFinishLock.TryLock(ctx, jobID)
		if err != nil {
			return false, opErr("maybe_finish_job", jobID, err)
		}
		if !ok {
			return false, nil
		}
		defer release(ctx)

		// Re-read: the worker that held the lock before us may have
		// already finished this job.
		job, err = f.store.Jobs().Get(ctx, jobID)
		if err != nil {
			return false, opErr("maybe_finish_job", jobID, err)
		}
		if job == nil {
			return false, opErr("maybe_finish_job", jobID, errEntityNotFound)
		}
		if job.IsTerminal() {
			return true, nil
		}
	}

	job.Status = domain.JobStatusFinished
	finishedAt := f.nowISO()
	job.Finished = &finishedAt
	if err := f.UpdateJob(ctx, job); err != nil {
		return false, err
	}
	return true, nil
}

// ReachedLimit records that site hit an external crawl-quota signal and
// finishes it as FINISHED_REACHED_LIMIT. Per the first-writer-wins
// rule, a site that already has a different reached_limit marker
// recorded keeps it: only the earliest signal is ever acted on.
func (f *Frontier) ReachedLimit(ctx context.Context, site *domain.Site, info domain.JSONMap) error {
	if len(site.ReachedLimit) == 0 {
		site.ReachedLimit = info
		return f.finished(ctx, site, domain.SiteStatusFinishedReachedLimit)
	}

	if !reflect.DeepEqual(map[string]any(site.ReachedLimit), map[string]any(info)) {
		f.log.Warn("reached_limit called again with a different marker, ignoring",
			"site_id", site.ID, "existing", site.ReachedLimit, "incoming", info)
	}
	return nil
}
