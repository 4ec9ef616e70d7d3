package robots_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crawlfrontier/frontier/internal/domain"
	"github.com/crawlfrontier/frontier/internal/robots"
)

const testCacheTTL = time.Hour

func newTestChecker() *robots.HTTPChecker {
	return robots.NewHTTPChecker(&http.Client{Timeout: testCacheTTL}, "TestBot/1.0", testCacheTTL)
}

func robotsServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(body))
	}))
}

func TestIsPermittedAllowed(t *testing.T) {
	t.Parallel()

	server := robotsServer(t, "User-agent: *\nDisallow: /private/\n")
	defer server.Close()

	checker := newTestChecker()
	site := &domain.Site{}

	allowed, err := checker.IsPermitted(context.Background(), site, server.URL+"/public/page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("expected /public/page to be allowed")
	}
}

func TestIsPermittedDisallowed(t *testing.T) {
	t.Parallel()

	server := robotsServer(t, "User-agent: *\nDisallow: /private/\n")
	defer server.Close()

	checker := newTestChecker()
	site := &domain.Site{}

	allowed, err := checker.IsPermitted(context.Background(), site, server.URL+"/private/secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Error("expected /private/secret to be disallowed")
	}
}

func TestIsPermittedIgnoreRobots(t *testing.T) {
	t.Parallel()

	server := robotsServer(t, "User-agent: *\nDisallow: /\n")
	defer server.Close()

	checker := newTestChecker()
	site := &domain.Site{IgnoreRobots: true}

	allowed, err := checker.IsPermitted(context.Background(), site, server.URL+"/anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("expected ignore_robots site to bypass robots.txt entirely")
	}
}

// TestIsPermittedConcurrentFirstFetchDeduped exercises the property that
// concurrent first-time lookups against the same uncached host collapse
// into a single robots.txt fetch rather than one fetch per caller.
func TestIsPermittedConcurrentFirstFetchDeduped(t *testing.T) {
	t.Parallel()

	var fetches int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&fetches, 1)
		time.Sleep(20 * time.Millisecond)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	}))
	defer server.Close()

	checker := newTestChecker()
	site := &domain.Site{}

	const callers = 20
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			if _, err := checker.IsPermitted(context.Background(), site, server.URL+"/public/page"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt64(&fetches); got != 1 {
		t.Errorf("fetches = %d, want 1 (concurrent first lookups should dedupe)", got)
	}
}
