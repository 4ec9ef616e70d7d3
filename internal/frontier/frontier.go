// Package frontier is the crawl coordination core: it owns jobs, sites,
// and pages, and arbitrates which worker gets to process what next.
//
// The frontier itself holds no state across calls — every operation
// reads and writes through store.Store, so any number of frontier
// values (in any number of processes) can serve the same backing store
// concurrently. Mutual exclusion comes entirely from the store's atomic
// claim primitives, not from anything in this package.
package frontier

import (
	"context"
	"time"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/logger"
	"github.com/crawlfrontier/frontier/internal/robots"
	"github.com/crawlfrontier/frontier/internal/store"
)

// defaultLeaseDuration bounds how long a claimed site or page may sit
// claimed before Sweep considers it abandoned and reclaims it.
const defaultLeaseDuration = 1 * time.Hour

// Frontier coordinates jobs, sites, and pages against a Store.
type Frontier struct {
	store         store.Store
	robots        robots.Checker
	log           logger.Interface
	now           func() time.Time
	leaseDuration time.Duration
	jobFinishLock JobFinishLocker
}

// Option configures a Frontier at construction time.
type Option func(*Frontier)

// WithLeaseDuration overrides how long a claim may stand before Sweep
// reclaims it. Default: defaultLeaseDuration.
func WithLeaseDuration(d time.Duration) Option {
	return func(f *Frontier) {
		f.leaseDuration = d
	}
}

// WithJobFinishLocker installs a locker used to serialize maybeFinishJob
// across frontier processes sharing a store. Without one, two workers
// finishing a job's last two sites concurrently may both run the
// check-all-terminal sequence; harmless against the tolerant store
// writes, but duplicated work, so production daemons should set this.
func WithJobFinishLocker(l JobFinishLocker) Option {
	return func(f *Frontier) {
		f.jobFinishLock = l
	}
}

// New builds a Frontier over st, using checker to decide robots
// permission for discovered outlinks.
func New(st store.Store, checker robots.Checker, log logger.Interface, opts ...Option) *Frontier {
	f := &Frontier{
		store:         st,
		robots:        checker,
		log:           log,
		now:           time.Now,
		leaseDuration: defaultLeaseDuration,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewJob inserts job, assigning its id if not already set.
func (f *Frontier) NewJob(ctx context.Context, job *domain.Job) error {
	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}
	if job.Started == "" {
		job.Started = f.nowISO()
	}

	result, err := f.store.Jobs().Insert(ctx, job)
	if err != nil {
		return opErr("new_job", job.ID, err)
	}
	return opErr("new_job", job.ID, store.Vet("new_job", result, store.Counts{Inserted: store.Exactly(1)}))
}

// NewSite inserts site, assigning its id if not already set.
func (f *Frontier) NewSite(ctx context.Context, site *domain.Site) error {
	if site.Status == "" {
		site.Status = domain.SiteStatusActive
	}
	if site.StartTime == 0 {
		site.StartTime = float64(f.now().Unix())
	}

	result, err := f.store.Sites().Insert(ctx, site)
	if err != nil {
		return opErr("new_site", site.ID, err)
	}
	return opErr("new_site", site.ID, store.Vet("new_site", result, store.Counts{Inserted: store.Exactly(1)}))
}

// NewPage inserts page. Callers are expected to have set page.ID via
// domain.PageID (or domain.NewPage) before calling this.
func (f *Frontier) NewPage(ctx context.Context, page *domain.Page) error {
	result, err := f.store.Pages().Insert(ctx, page)
	if err != nil {
		return opErr("new_page", page.ID, err)
	}
	return opErr("new_page", page.ID, store.Vet("new_page", result, store.Counts{Inserted: store.Exactly(1)}))
}

// replaceCounts is the tolerant contract for a replace-by-id of an
// entity the caller just read: a no-op write (content happened to be
// identical) is as acceptable as an actual replace, so both 0 and 1 are
// allowed for each; anything else means the id didn't uniquely match
// one row, which cannot happen against a primary key and so is fatal.
var replaceCounts = store.Counts{Replaced: store.AnyOf(0, 1), Unchanged: store.AnyOf(0, 1)}

// UpdatePage persists every field of page.
func (f *Frontier) UpdatePage(ctx context.Context, page *domain.Page) error {
	result, err := f.store.Pages().Replace(ctx, page)
	if err != nil {
		return opErr("update_page", page.ID, err)
	}
	return opErr("update_page", page.ID, store.Vet("update_page", result, replaceCounts))
}

// UpdateSite persists every field of site.
func (f *Frontier) UpdateSite(ctx context.Context, site *domain.Site) error {
	result, err := f.store.Sites().Replace(ctx, site)
	if err != nil {
		return opErr("update_site", site.ID, err)
	}
	return opErr("update_site", site.ID, store.Vet("update_site", result, replaceCounts))
}

// UpdateJob persists every field of job.
func (f *Frontier) UpdateJob(ctx context.Context, job *domain.Job) error {
	result, err := f.store.Jobs().Replace(ctx, job)
	if err != nil {
		return opErr("update_job", job.ID, err)
	}
	return opErr("update_job", job.ID, store.Vet("update_job", result, replaceCounts))
}

func (f *Frontier) nowISO() string {
	return f.now().UTC().Format("2006-01-02T15:04:05Z")
}

// GetJob reads back a job by id, for callers (the HTTP API, operator
// tooling) that only need a snapshot rather than a coordination
// primitive. Returns nil, nil when no such job exists.
func (f *Frontier) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := f.store.Jobs().Get(ctx, id)
	if err != nil {
		return nil, opErr("get_job", id, err)
	}
	return job, nil
}

// GetSite reads back a site by id. Returns nil, nil when no such site
// exists.
func (f *Frontier) GetSite(ctx context.Context, id string) (*domain.Site, error) {
	site, err := f.store.Sites().Get(ctx, id)
	if err != nil {
		return nil, opErr("get_site", id, err)
	}
	return site, nil
}

// SitesByJob lists every site belonging to jobID.
func (f *Frontier) SitesByJob(ctx context.Context, jobID string) ([]*domain.Site, error) {
	sites, err := f.store.Sites().ByJobID(ctx, jobID)
	if err != nil {
		return nil, opErr("sites_by_job", jobID, err)
	}
	return sites, nil
}

// GetPage reads back a page by id. Returns nil, nil when no such page
// exists.
func (f *Frontier) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	page, err := f.store.Pages().Get(ctx, id)
	if err != nil {
		return nil, opErr("get_page", id, err)
	}
	return page, nil
}
