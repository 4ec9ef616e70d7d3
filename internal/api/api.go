// Package api implements the HTTP API frontier workers use to claim
// and report on crawl work.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crawlfrontier/frontier/internal/api/middleware"
	"github.com/crawlfrontier/frontier/internal/config/server"
	"github.com/crawlfrontier/frontier/internal/logger"
)

const readHeaderTimeout = 10 * time.Second

// SetupRouter creates and configures the Gin router exposing h's
// worker-boundary operations.
func SetupRouter(
	log logger.Interface,
	cfg *server.Config,
	version string,
	h *FrontierHandler,
) (*gin.Engine, middleware.SecurityMiddlewareInterface) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))

	security := middleware.NewSecurityMiddleware(cfg, log)
	router.Use(security.Middleware())

	startTime := time.Now()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
			"uptime":  formatUptime(time.Since(startTime)),
		})
	})

	setupFrontierRoutes(router, h)

	return router, security
}

func setupFrontierRoutes(router *gin.Engine, h *FrontierHandler) {
	v1 := router.Group("/v1")

	v1.POST("/jobs", h.CreateJob)
	v1.GET("/jobs/:id", h.GetJob)
	v1.GET("/jobs/:id/sites", h.ListJobSites)

	v1.GET("/sites/:id", h.GetSite)
	v1.POST("/sites/claim", h.ClaimSite)
	v1.POST("/sites/:id/disclaim", h.DisclaimSite)
	v1.POST("/sites/:id/pages/claim", h.ClaimPage)
	v1.POST("/sites/:id/pages/:page_id/outlinks", h.ScopeAndScheduleOutlinks)
	v1.POST("/sites/:id/reached-limit", h.ReachedLimit)

	v1.POST("/pages/:id/completed", h.CompletedPage)
}

// loggingMiddleware logs every request at Info level once it completes.
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		log.Info("http request",
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

const (
	hoursPerDay      = 24
	minutesPerHour   = 60
	secondsPerMinute = 60
)

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	minutes := int(d.Minutes()) % minutesPerHour
	seconds := int(d.Seconds()) % secondsPerMinute

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// StartHTTPServer builds an *http.Server wired to h's routes, without
// starting it: callers control ListenAndServe/Shutdown so they can
// drive graceful shutdown themselves.
func StartHTTPServer(
	log logger.Interface,
	cfg *server.Config,
	version string,
	h *FrontierHandler,
) (*http.Server, middleware.SecurityMiddlewareInterface) {
	router, security := SetupRouter(log, cfg, version, h)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return srv, security
}
