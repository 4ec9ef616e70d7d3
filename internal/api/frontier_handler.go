package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/frontier"
	"github.com/crawlfrontier/frontier/internal/jobconf"
	"github.com/crawlfrontier/frontier/internal/robots"
	"github.com/crawlfrontier/frontier/internal/store"
)

// FrontierHandler exposes the worker-boundary operations of a Frontier
// over HTTP: claim, complete, disclaim, schedule outlinks, and the
// reached-limit signal, plus job submission and lookup.
type FrontierHandler struct {
	fr     *frontier.Frontier
	robots robots.Checker
}

// NewFrontierHandler builds a handler around fr, using checker to
// evaluate robots permission for a submitted job's seeds.
func NewFrontierHandler(fr *frontier.Frontier, checker robots.Checker) *FrontierHandler {
	return &FrontierHandler{fr: fr, robots: checker}
}

// CreateJob handles POST /v1/jobs: submits a job configuration document
// and queues its seeds.
func (h *FrontierHandler) CreateJob(c *gin.Context) {
	var req submitJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := jobconf.NewJob(c.Request.Context(), h.fr, h.robots, req.Conf)
	if err != nil {
		respondFrontierErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJob handles GET /v1/jobs/:id.
func (h *FrontierHandler) GetJob(c *gin.Context) {
	job, err := h.fr.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFrontierErr(c, err)
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobSites handles GET /v1/jobs/:id/sites.
func (h *FrontierHandler) ListJobSites(c *gin.Context) {
	sites, err := h.fr.SitesByJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFrontierErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sites": sites})
}

// GetSite handles GET /v1/sites/:id.
func (h *FrontierHandler) GetSite(c *gin.Context) {
	site, err := h.fr.GetSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFrontierErr(c, err)
		return
	}
	if site == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
		return
	}
	c.JSON(http.StatusOK, site)
}

// ClaimSite handles POST /v1/sites/claim: hands the requesting worker the
// longest-idle claimable site.
func (h *FrontierHandler) ClaimSite(c *gin.Context) {
	var req claimSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	site, err := h.fr.ClaimSite(c.Request.Context(), req.WorkerID)
	if err != nil {
		respondFrontierErr(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// ClaimPage handles POST /v1/sites/:id/pages/claim: hands the requesting
// worker the highest-priority claimable page under the named site.
func (h *FrontierHandler) ClaimPage(c *gin.Context) {
	var req claimPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	site, err := h.lookupSite(c)
	if err != nil {
		return
	}

	page, err := h.fr.ClaimPage(c.Request.Context(), site, req.WorkerID)
	if err != nil {
		respondFrontierErr(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CompletedPage handles POST /v1/pages/:id/completed: records that a
// claimed page was processed.
func (h *FrontierHandler) CompletedPage(c *gin.Context) {
	var req completedPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	site, err := h.fr.GetSite(ctx, req.SiteID)
	if err != nil {
		respondFrontierErr(c, err)
		return
	}
	if site == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
		return
	}

	page, err := h.fr.GetPage(ctx, c.Param("id"))
	if err != nil {
		respondFrontierErr(c, err)
		return
	}
	if page == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}
	page.RedirectURL = req.RedirectURL

	if err := h.fr.CompletedPage(ctx, site, page); err != nil {
		respondFrontierErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DisclaimSite handles POST /v1/sites/:id/disclaim: releases a claimed
// site, optionally along with an unfinished page.
func (h *FrontierHandler) DisclaimSite(c *gin.Context) {
	var req disclaimSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	site, err := h.lookupSite(c)
	if err != nil {
		return
	}

	var page *domain.Page
	if req.PageID != "" {
		page, err = h.fr.GetPage(ctx, req.PageID)
		if err != nil {
			respondFrontierErr(c, err)
			return
		}
		if page == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
			return
		}
	}

	if err := h.fr.DisclaimSite(ctx, site, page); err != nil {
		respondFrontierErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ScopeAndScheduleOutlinks handles POST /v1/sites/:id/pages/:page_id/outlinks:
// scopes and schedules a batch of URLs discovered on a claimed page.
func (h *FrontierHandler) ScopeAndScheduleOutlinks(c *gin.Context) {
	var req outlinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	site, err := h.lookupSite(c)
	if err != nil {
		return
	}

	parentPage, err := h.fr.GetPage(ctx, c.Param("page_id"))
	if err != nil {
		respondFrontierErr(c, err)
		return
	}
	if parentPage == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "parent page not found"})
		return
	}

	counts, err := h.fr.ScopeAndScheduleOutlinks(ctx, site, parentPage, req.URLs)
	if err != nil {
		respondFrontierErr(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// ReachedLimit handles POST /v1/sites/:id/reached-limit: records an
// external crawl-quota signal against a site.
func (h *FrontierHandler) ReachedLimit(c *gin.Context) {
	var req reachedLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	site, err := h.lookupSite(c)
	if err != nil {
		return
	}

	if err := h.fr.ReachedLimit(c.Request.Context(), site, req.Info); err != nil {
		respondFrontierErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// lookupSite reads the site named by the :id path param, writing a
// JSON error response and returning a non-nil err when it can't be
// used as a handler argument.
func (h *FrontierHandler) lookupSite(c *gin.Context) (*domain.Site, error) {
	site, err := h.fr.GetSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFrontierErr(c, err)
		return nil, err
	}
	if site == nil {
		err = errors.New("site not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, err
	}
	return site, nil
}

// respondFrontierErr maps a frontier-operation error to the HTTP
// status SPEC_FULL.md §6 prescribes: ErrNothingToClaim is an expected
// "nothing to do yet" outcome, not success and not fatal, so a polling
// worker can tell it apart from an empty-body 2xx (409); an
// UnexpectedResultError means the store's write tallies didn't match
// what the operation expected, which signals data-model corruption and
// is fatal (500); everything else is treated as a transient
// store/transport failure the caller should retry (503).
func respondFrontierErr(c *gin.Context, err error) {
	switch {
	case frontier.IsNothingToClaim(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case isUnexpectedResult(err):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	}
}

func isUnexpectedResult(err error) bool {
	var unexpected *store.UnexpectedResultError
	return errors.As(err, &unexpected)
}
