package domain

import (
	"crypto/sha1" //nolint:gosec // page identity hash, not a security boundary
	"encoding/hex"
	"fmt"

	"github.com/crawlfrontier/frontier/internal/canon"
)

// Page is a single URL scheduled for, or completed by, one crawl.
//
// ID is deterministic from (SiteID, canonical URL): re-discovering the
// same URL within a site is therefore a primary-key collision, handled by
// callers as "fetch the existing page, add priorities, update" rather than
// a duplicate insert.
type Page struct {
	ID             string  `db:"id"               json:"id"`
	SiteID         string  `db:"site_id"          json:"site_id"`
	JobID          string  `db:"job_id"           json:"job_id"`
	URL            string  `db:"url"              json:"url"`
	HopsFromSeed   int     `db:"hops_from_seed"   json:"hops_from_seed"`
	RedirectURL    string  `db:"redirect_url"     json:"redirect_url,omitempty"`
	Priority       int     `db:"priority"         json:"priority"`
	Claimed        bool    `db:"claimed"          json:"claimed"`
	LastClaimedBy  string  `db:"last_claimed_by"  json:"last_claimed_by,omitempty"`
	BrozzleCount   int     `db:"brozzle_count"    json:"brozzle_count"`
	ViaPageID      string  `db:"via_page_id"      json:"via_page_id,omitempty"`
	ClaimExpiry    float64 `db:"claim_expiry"     json:"claim_expiry,omitempty"`
}

// PageID computes the deterministic id for a page belonging to siteID at
// rawURL: hex SHA-1 of "site_id:{site_id},canon_url:{canon_url}".
//
// Two Pages constructed for the same (siteID, url-up-to-canonicalization)
// always produce the same id, which is the round-trip property the
// frontier's insert-or-boost-priority logic depends on.
func PageID(siteID, rawURL string) string {
	canonURL := canon.Canonicalize(rawURL)
	digestThis := fmt.Sprintf("site_id:%s,canon_url:%s", siteID, canonURL)
	sum := sha1.Sum([]byte(digestThis)) //nolint:gosec // identity hash, not a security boundary
	return hex.EncodeToString(sum[:])
}

// NewPage constructs a Page with a computed id and the priority the
// caller passes in (callers compute it with the priority package).
func NewPage(siteID, jobID, rawURL string, hopsFromSeed int, viaPageID string, priority int) *Page {
	return &Page{
		ID:           PageID(siteID, rawURL),
		SiteID:       siteID,
		JobID:        jobID,
		URL:          rawURL,
		HopsFromSeed: hopsFromSeed,
		ViaPageID:    viaPageID,
		Priority:     priority,
	}
}

// IsDone reports whether the page has been processed at least once and is
// therefore invisible to ClaimPage (its brozzle_count index key is no
// longer 0).
func (p *Page) IsDone() bool {
	return p.BrozzleCount > 0
}
