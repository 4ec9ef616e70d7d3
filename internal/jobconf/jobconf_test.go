package jobconf_test

import (
	"context"
	"strings"
	"testing"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/frontier"
	"github.com/crawlfrontier/frontier/internal/jobconf"
	"github.com/crawlfrontier/frontier/internal/logger"
	"github.com/crawlfrontier/frontier/internal/store"
)

// minimalStore implements store.Store using plain maps, enough to
// exercise jobconf.NewJob's insert-only call pattern.
type minimalStore struct {
	jobs  map[string]*domain.Job
	sites map[string]*domain.Site
	pages map[string]*domain.Page
}

func newMinimalStore() *minimalStore {
	return &minimalStore{
		jobs:  map[string]*domain.Job{},
		sites: map[string]*domain.Site{},
		pages: map[string]*domain.Page{},
	}
}

func (s *minimalStore) Jobs() store.JobStore   { return (*minimalJobs)(s) }
func (s *minimalStore) Sites() store.SiteStore { return (*minimalSites)(s) }
func (s *minimalStore) Pages() store.PageStore { return (*minimalPages)(s) }

type minimalJobs minimalStore

func (m *minimalJobs) Insert(_ context.Context, job *domain.Job) (store.Result, error) {
	if job.ID == "" {
		job.ID = "job-1"
	}
	(*minimalStore)(m).jobs[job.ID] = job
	return store.Result{Inserted: 1}, nil
}
func (m *minimalJobs) Replace(_ context.Context, job *domain.Job) (store.Result, error) {
	(*minimalStore)(m).jobs[job.ID] = job
	return store.Result{Replaced: 1}, nil
}
func (m *minimalJobs) Get(_ context.Context, id string) (*domain.Job, error) {
	return (*minimalStore)(m).jobs[id], nil
}

type minimalSites minimalStore

func (m *minimalSites) Insert(_ context.Context, site *domain.Site) (store.Result, error) {
	if site.ID == "" {
		site.ID = "site-" + site.Seed
	}
	(*minimalStore)(m).sites[site.ID] = site
	return store.Result{Inserted: 1}, nil
}
func (m *minimalSites) Replace(_ context.Context, site *domain.Site) (store.Result, error) {
	(*minimalStore)(m).sites[site.ID] = site
	return store.Result{Replaced: 1}, nil
}
func (m *minimalSites) Get(_ context.Context, id string) (*domain.Site, error) {
	return (*minimalStore)(m).sites[id], nil
}
func (m *minimalSites) ClaimNext(context.Context, string) (*domain.Site, *domain.Site, error) {
	return nil, nil, store.ErrNothingToClaim
}
func (m *minimalSites) ByJobID(context.Context, string) ([]*domain.Site, error) { return nil, nil }
func (m *minimalSites) ExpiredClaims(context.Context, float64) ([]*domain.Site, error) {
	return nil, nil
}

type minimalPages minimalStore

func (m *minimalPages) Insert(_ context.Context, page *domain.Page) (store.Result, error) {
	(*minimalStore)(m).pages[page.ID] = page
	return store.Result{Inserted: 1}, nil
}
func (m *minimalPages) Replace(_ context.Context, page *domain.Page) (store.Result, error) {
	(*minimalStore)(m).pages[page.ID] = page
	return store.Result{Replaced: 1}, nil
}
func (m *minimalPages) Get(_ context.Context, id string) (*domain.Page, error) {
	return (*minimalStore)(m).pages[id], nil
}
func (m *minimalPages) ClaimNext(context.Context, string, string) (*domain.Page, error) {
	return nil, store.ErrNothingToClaim
}
func (m *minimalPages) HasOutstanding(context.Context, string) (bool, error) { return false, nil }
func (m *minimalPages) ExpiredClaims(context.Context, float64) ([]*domain.Page, error) {
	return nil, nil
}

type allowAllChecker struct{}

func (allowAllChecker) IsPermitted(context.Context, *domain.Site, string) (bool, error) {
	return true, nil
}

const jobYAML = `
seeds:
  - url: http://example.com/
    ignore_robots: true
  - url: http://example.org/
time_limit: 3600
`

func TestNewJobCreatesSitesAndSeedPages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newMinimalStore()
	fr := frontier.New(st, allowAllChecker{}, logger.NewNoOp())

	conf, err := jobconf.Load(strings.NewReader(jobYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	job, err := jobconf.NewJob(ctx, fr, allowAllChecker{}, conf)
	if err != nil {
		t.Fatalf("NewJob() error = %v", err)
	}
	if job.ID == "" {
		t.Fatal("job.ID not assigned")
	}

	if len(st.sites) != 2 {
		t.Fatalf("len(sites) = %d, want 2", len(st.sites))
	}
	if len(st.pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2 seed pages", len(st.pages))
	}

	for _, site := range st.sites {
		if site.Seed == "http://example.com/" && !site.IgnoreRobots {
			t.Error("example.com site should inherit ignore_robots=true from its seed")
		}
		if site.TimeLimit == nil || *site.TimeLimit != 3600 {
			t.Errorf("site %s time_limit = %v, want 3600 inherited from job", site.Seed, site.TimeLimit)
		}
	}

	for _, page := range st.pages {
		if page.Priority != 1000 {
			t.Errorf("seed page priority = %d, want 1000", page.Priority)
		}
	}
}
