package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/store"
)

const siteColumns = `id, job_id, seed, scope, proxy, ignore_robots, enable_warcprox_features,
	extra_headers, time_limit, reached_limit, status, claimed, last_claimed_by,
	start_time, last_disclaimed, claim_expiry`

// maxLastDisclaimed bounds the claim-order scan: an open-ended range
// would also be correct, but a finite upper bound lets the query use
// the (status, claimed, last_disclaimed) index the same way regardless
// of how far in the future a caller might (mistakenly) set the field.
const maxLastDisclaimed = 2.5e11

// SiteStore is the sites table's postgres.Store implementation.
type SiteStore struct {
	db *sqlx.DB
}

// Insert writes a new site row, assigning site.ID when it is empty.
func (s *SiteStore) Insert(ctx context.Context, site *domain.Site) (store.Result, error) {
	if site.ID == "" {
		site.ID = uuid.NewString()
	}

	query := `INSERT INTO sites (` + siteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := s.db.ExecContext(ctx, query,
		site.ID, site.JobID, site.Seed, site.ScopeMap, site.Proxy, site.IgnoreRobots,
		site.EnableWarcproxFeatures, site.ExtraHeaders, site.TimeLimit, site.ReachedLimit,
		site.Status, site.Claimed, site.LastClaimedBy, site.StartTime, site.LastDisclaimed,
		site.ClaimExpiry,
	)
	if err != nil {
		return store.Result{}, fmt.Errorf("insert site %s: %w", site.ID, err)
	}

	return store.Result{Inserted: 1, GeneratedKeys: []string{site.ID}}, nil
}

// Replace overwrites every column of an existing site row.
func (s *SiteStore) Replace(ctx context.Context, site *domain.Site) (store.Result, error) {
	query := `UPDATE sites SET
		job_id = $1, seed = $2, scope = $3, proxy = $4, ignore_robots = $5,
		enable_warcprox_features = $6, extra_headers = $7, time_limit = $8,
		reached_limit = $9, status = $10, claimed = $11, last_claimed_by = $12,
		start_time = $13, last_disclaimed = $14, claim_expiry = $15
		WHERE id = $16`
	result, err := s.db.ExecContext(ctx, query,
		site.JobID, site.Seed, site.ScopeMap, site.Proxy, site.IgnoreRobots,
		site.EnableWarcproxFeatures, site.ExtraHeaders, site.TimeLimit, site.ReachedLimit,
		site.Status, site.Claimed, site.LastClaimedBy, site.StartTime, site.LastDisclaimed,
		site.ClaimExpiry, site.ID,
	)
	return execReplaced(result, err)
}

// Get fetches a site by id, returning nil, nil if no such site exists.
func (s *SiteStore) Get(ctx context.Context, id string) (*domain.Site, error) {
	var site domain.Site
	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = $1`
	err := s.db.GetContext(ctx, &site, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site %s: %w", id, err)
	}
	return &site, nil
}

// ClaimNext selects and locks the ACTIVE, unclaimed site that has been
// idle longest (lowest last_disclaimed), within a single transaction,
// and flips it to claimed by workerID. It returns both the
// pre-claim and post-claim snapshots so callers can enforce the site's
// time limit against the original start_time before using the claim.
//
// ErrNothingToClaim is returned, not wrapped, when no row matches: the
// caller's claim loop checks for it with errors.Is.
func (s *SiteStore) ClaimNext(ctx context.Context, workerID string) (before, after *domain.Site, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin claim_site transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var site domain.Site
	selectQuery := `SELECT ` + siteColumns + ` FROM sites
		WHERE status = $1 AND claimed = false
		  AND last_disclaimed >= 0 AND last_disclaimed <= $2
		ORDER BY last_disclaimed ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED`
	selErr := tx.GetContext(ctx, &site, selectQuery, domain.SiteStatusActive, maxLastDisclaimed)
	if selErr != nil {
		if errors.Is(selErr, sql.ErrNoRows) {
			return nil, nil, store.ErrNothingToClaim
		}
		return nil, nil, fmt.Errorf("select claimable site: %w", selErr)
	}

	beforeCopy := site

	updateQuery := `UPDATE sites SET claimed = true, last_claimed_by = $1 WHERE id = $2`
	if _, updErr := tx.ExecContext(ctx, updateQuery, workerID, site.ID); updErr != nil {
		return nil, nil, fmt.Errorf("mark site %s claimed: %w", site.ID, updErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, nil, fmt.Errorf("commit claim_site transaction: %w", commitErr)
	}

	site.Claimed = true
	site.LastClaimedBy = workerID
	return &beforeCopy, &site, nil
}

// ByJobID returns every site belonging to jobID, used by the job-finish
// check to look for any still-non-terminal sibling site.
func (s *SiteStore) ByJobID(ctx context.Context, jobID string) ([]*domain.Site, error) {
	var sites []*domain.Site
	query := `SELECT ` + siteColumns + ` FROM sites WHERE job_id = $1`
	if err := s.db.SelectContext(ctx, &sites, query, jobID); err != nil {
		return nil, fmt.Errorf("list sites for job %s: %w", jobID, err)
	}
	return sites, nil
}

// ExpiredClaims returns every claimed site whose claim_expiry has
// passed asOf, for the sweeper to reclaim.
func (s *SiteStore) ExpiredClaims(ctx context.Context, asOf float64) ([]*domain.Site, error) {
	var sites []*domain.Site
	query := `SELECT ` + siteColumns + ` FROM sites
		WHERE claimed = true AND claim_expiry > 0 AND claim_expiry <= $1`
	if err := s.db.SelectContext(ctx, &sites, query, asOf); err != nil {
		return nil, fmt.Errorf("list expired site claims: %w", err)
	}
	return sites, nil
}
