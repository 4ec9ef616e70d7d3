// Package robots checks robots.txt permission for candidate URLs, with
// per-host caching so the frontier does not refetch robots.txt for
// every page on a site.
package robots

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"

	"github.com/crawlfrontier/frontier/internal/domain"
)

// ErrReachedLimit is returned by Checker implementations that detect a
// crawl-quota signal while fetching robots.txt (for example, a proxy
// returning a limit-reached status for every request on a host). The
// frontier converts it into reached_limit(site, ...) instead of
// treating it as scope rejection.
var ErrReachedLimit = errors.New("reached limit")

// Checker decides whether a URL may be fetched for a site.
type Checker interface {
	IsPermitted(ctx context.Context, site *domain.Site, rawURL string) (bool, error)
}

const (
	defaultCacheTTL     = 24 * time.Hour
	robotsTxtPath       = "/robots.txt"
	maxRobotsBodyBytes  = 512 * 1024
	statusSuccessLow    = 200
	statusSuccessHigh   = 300
)

// HTTPChecker is the default Checker, backed by github.com/temoto/robotstxt
// with a per-host cache. A Site with IgnoreRobots set always passes.
type HTTPChecker struct {
	httpClient *http.Client
	userAgent  string
	cacheTTL   time.Duration

	mu    sync.RWMutex
	cache map[string]*cacheEntry

	fetchGroup singleflight.Group
}

type cacheEntry struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
	allowAll  bool
}

// NewHTTPChecker builds a Checker using httpClient to fetch robots.txt,
// identifying itself with userAgent. A zero cacheTTL uses the default
// of 24 hours.
func NewHTTPChecker(httpClient *http.Client, userAgent string, cacheTTL time.Duration) *HTTPChecker {
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}
	return &HTTPChecker{
		httpClient: httpClient,
		userAgent:  userAgent,
		cacheTTL:   cacheTTL,
		cache:      make(map[string]*cacheEntry),
	}
}

// IsPermitted reports whether rawURL may be fetched for site.
func (c *HTTPChecker) IsPermitted(ctx context.Context, site *domain.Site, rawURL string) (bool, error) {
	if site.IgnoreRobots {
		return true, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("robots: parse url: %w", err)
	}

	host := strings.ToLower(parsed.Host)
	if host == "" {
		return false, fmt.Errorf("robots: empty host in url %q", rawURL)
	}

	entry, err := c.getOrFetch(ctx, host, parsed.Scheme)
	if err != nil {
		return false, err
	}

	if entry.allowAll {
		return true, nil
	}

	return entry.data.TestAgent(parsed.Path, c.userAgent), nil
}

// getOrFetch returns the cached robots.txt entry for host, fetching it if
// absent or stale. Concurrent callers for the same uncached host share a
// single in-flight fetch via fetchGroup rather than each issuing their own
// HTTP request.
func (c *HTTPChecker) getOrFetch(ctx context.Context, host, scheme string) (*cacheEntry, error) {
	if entry, ok := c.cached(host); ok {
		return entry, nil
	}

	v, err, _ := c.fetchGroup.Do(host, func() (any, error) {
		if entry, ok := c.cached(host); ok {
			return entry, nil
		}
		return c.fetchAndCache(ctx, host, scheme)
	})
	if err != nil {
		return nil, err
	}
	return v.(*cacheEntry), nil
}

func (c *HTTPChecker) cached(host string) (*cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.cache[host]
	if !ok || time.Since(entry.fetchedAt) > c.cacheTTL {
		return nil, false
	}
	return entry, true
}

func (c *HTTPChecker) fetchAndCache(ctx context.Context, host, scheme string) (*cacheEntry, error) {
	if scheme == "" {
		scheme = "https"
	}
	robotsURL := scheme + "://" + host + robotsTxtPath

	body, status, err := c.fetch(ctx, robotsURL)
	if err != nil {
		// A fetch failure degrades to allow-all rather than blocking the
		// whole host; robots.txt is advisory, not load-bearing.
		return c.store(host, &cacheEntry{fetchedAt: time.Now(), allowAll: true}), nil
	}

	return c.store(host, parseEntry(body, status)), nil
}

func (c *HTTPChecker) fetch(ctx context.Context, robotsURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("robots: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("robots: fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("robots: read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func parseEntry(body []byte, status int) *cacheEntry {
	if status < statusSuccessLow || status >= statusSuccessHigh {
		return &cacheEntry{fetchedAt: time.Now(), allowAll: true}
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return &cacheEntry{fetchedAt: time.Now(), allowAll: true}
	}
	return &cacheEntry{data: data, fetchedAt: time.Now()}
}

func (c *HTTPChecker) store(host string, entry *cacheEntry) *cacheEntry {
	c.mu.Lock()
	c.cache[host] = entry
	c.mu.Unlock()
	return entry
}
