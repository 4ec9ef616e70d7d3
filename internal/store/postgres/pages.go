package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/store"
)

const pageColumns = `id, site_id, job_id, url, hops_from_seed, redirect_url, priority,
	claimed, last_claimed_by, brozzle_count, via_page_id, claim_expiry`

// PageStore is the pages table's postgres.Store implementation.
type PageStore struct {
	db *sqlx.DB
}

// Insert writes a new page row. Page.ID is deterministic and must
// already be set by the caller (see domain.PageID).
func (s *PageStore) Insert(ctx context.Context, page *domain.Page) (store.Result, error) {
	query := `INSERT INTO pages (` + pageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.db.ExecContext(ctx, query,
		page.ID, page.SiteID, page.JobID, page.URL, page.HopsFromSeed, page.RedirectURL,
		page.Priority, page.Claimed, page.LastClaimedBy, page.BrozzleCount, page.ViaPageID,
		page.ClaimExpiry,
	)
	if err != nil {
		return store.Result{}, fmt.Errorf("insert page %s: %w", page.ID, err)
	}

	return store.Result{Inserted: 1, GeneratedKeys: []string{page.ID}}, nil
}

// Replace overwrites every column of an existing page row.
func (s *PageStore) Replace(ctx context.Context, page *domain.Page) (store.Result, error) {
	query := `UPDATE pages SET
		site_id = $1, job_id = $2, url = $3, hops_from_seed = $4, redirect_url = $5,
		priority = $6, claimed = $7, last_claimed_by = $8, brozzle_count = $9,
		via_page_id = $10, claim_expiry = $11
		WHERE id = $12`
	result, err := s.db.ExecContext(ctx, query,
		page.SiteID, page.JobID, page.URL, page.HopsFromSeed, page.RedirectURL,
		page.Priority, page.Claimed, page.LastClaimedBy, page.BrozzleCount,
		page.ViaPageID, page.ClaimExpiry, page.ID,
	)
	return execReplaced(result, err)
}

// Get fetches a page by id, returning nil, nil if no such page exists.
func (s *PageStore) Get(ctx context.Context, id string) (*domain.Page, error) {
	var page domain.Page
	query := `SELECT ` + pageColumns + ` FROM pages WHERE id = $1`
	err := s.db.GetContext(ctx, &page, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get page %s: %w", id, err)
	}
	return &page, nil
}

// ClaimNext selects and locks the highest-priority unclaimed,
// not-yet-processed page belonging to siteID, and flips it to claimed
// by workerID. brozzle_count = 0 in the predicate is what makes a
// completed page invisible to future claims without deleting it.
func (s *PageStore) ClaimNext(ctx context.Context, siteID, workerID string) (*domain.Page, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin claim_page transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var page domain.Page
	selectQuery := `SELECT ` + pageColumns + ` FROM pages
		WHERE site_id = $1 AND brozzle_count = 0 AND claimed = false
		ORDER BY priority DESC
		LIMIT 1
		FOR UPDATE SKIP LOCKED`
	selErr := tx.GetContext(ctx, &page, selectQuery, siteID)
	if selErr != nil {
		if errors.Is(selErr, sql.ErrNoRows) {
			return nil, store.ErrNothingToClaim
		}
		return nil, fmt.Errorf("select claimable page: %w", selErr)
	}

	updateQuery := `UPDATE pages SET claimed = true, last_claimed_by = $1 WHERE id = $2`
	if _, updErr := tx.ExecContext(ctx, updateQuery, workerID, page.ID); updErr != nil {
		return nil, fmt.Errorf("mark page %s claimed: %w", page.ID, updErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, fmt.Errorf("commit claim_page transaction: %w", commitErr)
	}

	page.Claimed = true
	page.LastClaimedBy = workerID
	return &page, nil
}

// ExpiredClaims returns every claimed page whose claim_expiry has
// passed asOf, for the sweeper to reclaim.
func (s *PageStore) ExpiredClaims(ctx context.Context, asOf float64) ([]*domain.Page, error) {
	var pages []*domain.Page
	query := `SELECT ` + pageColumns + ` FROM pages
		WHERE claimed = true AND claim_expiry > 0 AND claim_expiry <= $1`
	if err := s.db.SelectContext(ctx, &pages, query, asOf); err != nil {
		return nil, fmt.Errorf("list expired page claims: %w", err)
	}
	return pages, nil
}

// HasOutstanding reports whether siteID has any page that is either
// still claimed or not yet claimed but unprocessed — i.e. any row at
// all in the priority_by_site index regardless of claimed value.
func (s *PageStore) HasOutstanding(ctx context.Context, siteID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pages WHERE site_id = $1 AND brozzle_count = 0 LIMIT 1)`
	if err := s.db.GetContext(ctx, &exists, query, siteID); err != nil {
		return false, fmt.Errorf("check outstanding pages for site %s: %w", siteID, err)
	}
	return exists, nil
}
