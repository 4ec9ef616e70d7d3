package metrics_test

import (
	"testing"
	"time"

	"github.com/crawlfrontier/frontier/internal/metrics"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	m := metrics.NewMetrics()
	assert.NotNil(t, m)
	assert.False(t, m.GetStartTime().IsZero())
}

func TestHTTPRequestMetrics(t *testing.T) {
	m := metrics.NewMetrics()

	m.IncrementSuccessfulRequests()
	m.IncrementSuccessfulRequests()
	assert.Equal(t, int64(2), m.GetSuccessfulRequests(), "Should have 2 successful requests")

	m.IncrementFailedRequests()
	assert.Equal(t, int64(1), m.GetFailedRequests(), "Should have 1 failed request")

	m.IncrementRateLimitedRequests()
	m.IncrementRateLimitedRequests()
	assert.Equal(t, int64(2), m.GetRateLimitedRequests(), "Should have 2 rate limited requests")

	m.ResetMetrics()
	assert.Equal(t, int64(0), m.GetSuccessfulRequests(), "Should have no successful requests after reset")
	assert.Equal(t, int64(0), m.GetFailedRequests(), "Should have no failed requests after reset")
	assert.Equal(t, int64(0), m.GetRateLimitedRequests(), "Should have no rate limited requests after reset")
}

func TestHTTPRequestMetricsConcurrently(t *testing.T) {
	m := metrics.NewMetrics()

	go func() {
		m.IncrementSuccessfulRequests()
	}()
	go func() {
		m.IncrementFailedRequests()
	}()
	go func() {
		m.IncrementRateLimitedRequests()
	}()

	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int64(1), m.GetSuccessfulRequests(), "Should have 1 successful request")
	assert.Equal(t, int64(1), m.GetFailedRequests(), "Should have 1 failed request")
	assert.Equal(t, int64(1), m.GetRateLimitedRequests(), "Should have 1 rate limited request")
}
