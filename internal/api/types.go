package api

import "github.com/crawlfrontier/frontier/internal/domain"

// claimPageRequest is the body of POST /v1/sites/:id/pages/claim.
type claimPageRequest struct {
	WorkerID string `json:"worker_id" binding:"required"`
}

// claimSiteRequest is the body of POST /v1/sites/claim.
type claimSiteRequest struct {
	WorkerID string `json:"worker_id" binding:"required"`
}

// completedPageRequest is the body of POST /v1/pages/:id/completed.
type completedPageRequest struct {
	SiteID      string `json:"site_id" binding:"required"`
	RedirectURL string `json:"redirect_url"`
}

// disclaimSiteRequest is the body of POST /v1/sites/:id/disclaim.
type disclaimSiteRequest struct {
	PageID string `json:"page_id"`
}

// outlinksRequest is the body of POST /v1/sites/:id/pages/:page_id/outlinks.
type outlinksRequest struct {
	URLs []string `json:"urls"`
}

// reachedLimitRequest is the body of POST /v1/sites/:id/reached-limit.
type reachedLimitRequest struct {
	Info domain.JSONMap `json:"info"`
}

// submitJobRequest is the body of POST /v1/jobs; conf is a job configuration
// document in the same shape jobconf.Load produces from YAML.
type submitJobRequest struct {
	Conf map[string]any `json:"conf" binding:"required"`
}
