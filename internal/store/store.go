// Package store defines the frontier's storage contract: the atomic
// primitives the coordination core needs, independent of which database
// backs them.
package store

import (
	"context"

	"github.com/crawlfrontier/frontier/internal/domain"
)

// ErrNothingToClaim is returned by ClaimSite/ClaimPage when no row
// currently matches the claim predicate. It is not an error condition
// for the caller's retry loop — it means "try again later" or "this
// worker is idle".
var ErrNothingToClaim = sentinelError("nothing to claim")

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

// Result reports how many rows a write affected, in the shape the
// caller vets against expectations (see Vet).
type Result struct {
	Inserted      int
	Replaced      int
	Unchanged     int
	Deleted       int
	Skipped       int
	Errors        int
	GeneratedKeys []string
}

// JobStore is the jobs table's contract.
type JobStore interface {
	Insert(ctx context.Context, job *domain.Job) (Result, error)
	Replace(ctx context.Context, job *domain.Job) (Result, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
}

// SiteStore is the sites table's contract.
//
// ClaimNext is the only primitive the claim protocol relies on for
// atomicity: it must select and lock the single oldest-idle claimable
// site, flip claimed/last_claimed_by, and hand back both snapshots in
// one round trip.
type SiteStore interface {
	Insert(ctx context.Context, site *domain.Site) (Result, error)
	Replace(ctx context.Context, site *domain.Site) (Result, error)
	Get(ctx context.Context, id string) (*domain.Site, error)
	ClaimNext(ctx context.Context, workerID string) (before, after *domain.Site, err error)
	ByJobID(ctx context.Context, jobID string) ([]*domain.Site, error)
	ExpiredClaims(ctx context.Context, asOf float64) ([]*domain.Site, error)
}

// PageStore is the pages table's contract.
type PageStore interface {
	Insert(ctx context.Context, page *domain.Page) (Result, error)
	Replace(ctx context.Context, page *domain.Page) (Result, error)
	Get(ctx context.Context, id string) (*domain.Page, error)
	ClaimNext(ctx context.Context, siteID, workerID string) (*domain.Page, error)
	HasOutstanding(ctx context.Context, siteID string) (bool, error)
	ExpiredClaims(ctx context.Context, asOf float64) ([]*domain.Page, error)
}

// Store bundles the three table contracts the frontier depends on.
type Store interface {
	Jobs() JobStore
	Sites() SiteStore
	Pages() PageStore
}
