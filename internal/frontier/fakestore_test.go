package frontier_test

import (
	"context"
	"sort"
	"sync"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/store"
)

// fakeStore is an in-memory store.Store used to exercise the frontier's
// claim-ordering and finishing logic without a live database. Unlike a
// call-counting mock, it reproduces the real selection semantics
// (oldest-idle site, highest-priority page) because those semantics are
// exactly what these tests need to verify.
type fakeStore struct {
	mu    sync.Mutex
	jobs  map[string]*domain.Job
	sites map[string]*domain.Site
	pages map[string]*domain.Page
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:  map[string]*domain.Job{},
		sites: map[string]*domain.Site{},
		pages: map[string]*domain.Page{},
	}
}

func (s *fakeStore) Jobs() store.JobStore   { return (*fakeJobs)(s) }
func (s *fakeStore) Sites() store.SiteStore { return (*fakeSites)(s) }
func (s *fakeStore) Pages() store.PageStore { return (*fakePages)(s) }

type fakeJobs fakeStore

func (f *fakeJobs) Insert(_ context.Context, job *domain.Job) (store.Result, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if job.ID == "" {
		job.ID = "job-" + randSuffix(len(s.jobs))
	}
	cp := *job
	s.jobs[job.ID] = &cp
	return store.Result{Inserted: 1, GeneratedKeys: []string{job.ID}}, nil
}

func (f *fakeJobs) Replace(_ context.Context, job *domain.Job) (store.Result, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		return store.Result{}, nil
	}
	cp := *job
	s.jobs[job.ID] = &cp
	return store.Result{Replaced: 1}, nil
}

func (f *fakeJobs) Get(_ context.Context, id string) (*domain.Job, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

type fakeSites fakeStore

func (f *fakeSites) Insert(_ context.Context, site *domain.Site) (store.Result, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if site.ID == "" {
		site.ID = "site-" + randSuffix(len(s.sites))
	}
	cp := *site
	s.sites[site.ID] = &cp
	return store.Result{Inserted: 1, GeneratedKeys: []string{site.ID}}, nil
}

func (f *fakeSites) Replace(_ context.Context, site *domain.Site) (store.Result, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sites[site.ID]; !ok {
		return store.Result{}, nil
	}
	cp := *site
	s.sites[site.ID] = &cp
	return store.Result{Replaced: 1}, nil
}

func (f *fakeSites) Get(_ context.Context, id string) (*domain.Site, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.sites[id]
	if !ok {
		return nil, nil
	}
	cp := *site
	return &cp, nil
}

func (f *fakeSites) ClaimNext(_ context.Context, workerID string) (before, after *domain.Site, err error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []*domain.Site
	for _, site := range s.sites {
		if site.Status == domain.SiteStatusActive && !site.Claimed && site.LastDisclaimed >= 0 && site.LastDisclaimed <= 2.5e11 {
			candidates = append(candidates, site)
		}
	}
	if len(candidates) == 0 {
		return nil, nil, store.ErrNothingToClaim
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].LastDisclaimed < candidates[j].LastDisclaimed })

	chosen := candidates[0]
	beforeCopy := *chosen
	chosen.Claimed = true
	chosen.LastClaimedBy = workerID
	afterCopy := *chosen
	return &beforeCopy, &afterCopy, nil
}

func (f *fakeSites) ByJobID(_ context.Context, jobID string) ([]*domain.Site, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Site
	for _, site := range s.sites {
		if site.JobID == jobID {
			cp := *site
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSites) ExpiredClaims(_ context.Context, asOf float64) ([]*domain.Site, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Site
	for _, site := range s.sites {
		if site.Claimed && site.ClaimExpiry > 0 && site.ClaimExpiry <= asOf {
			cp := *site
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakePages fakeStore

func (f *fakePages) Insert(_ context.Context, page *domain.Page) (store.Result, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *page
	s.pages[page.ID] = &cp
	return store.Result{Inserted: 1, GeneratedKeys: []string{page.ID}}, nil
}

func (f *fakePages) Replace(_ context.Context, page *domain.Page) (store.Result, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[page.ID]; !ok {
		return store.Result{}, nil
	}
	cp := *page
	s.pages[page.ID] = &cp
	return store.Result{Replaced: 1}, nil
}

func (f *fakePages) Get(_ context.Context, id string) (*domain.Page, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	page, ok := s.pages[id]
	if !ok {
		return nil, nil
	}
	cp := *page
	return &cp, nil
}

func (f *fakePages) ClaimNext(_ context.Context, siteID, workerID string) (*domain.Page, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()

	var chosen *domain.Page
	for _, page := range s.pages {
		if page.SiteID != siteID || page.BrozzleCount != 0 || page.Claimed {
			continue
		}
		if chosen == nil || page.Priority > chosen.Priority {
			chosen = page
		}
	}
	if chosen == nil {
		return nil, store.ErrNothingToClaim
	}
	chosen.Claimed = true
	chosen.LastClaimedBy = workerID
	cp := *chosen
	return &cp, nil
}

func (f *fakePages) HasOutstanding(_ context.Context, siteID string) (bool, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, page := range s.pages {
		if page.SiteID == siteID && page.BrozzleCount == 0 {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePages) ExpiredClaims(_ context.Context, asOf float64) ([]*domain.Page, error) {
	s := (*fakeStore)(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Page
	for _, page := range s.pages {
		if page.Claimed && page.ClaimExpiry > 0 && page.ClaimExpiry <= asOf {
			cp := *page
			out = append(out, &cp)
		}
	}
	return out, nil
}

func randSuffix(n int) string {
	const letters = "0123456789abcdef"
	return string(letters[n%len(letters)]) + string(letters[(n*7)%len(letters)])
}
