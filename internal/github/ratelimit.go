package github

import (
	"context"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"
)

const (
	// proactiveRate paces outbound calls at ~1.2 req/sec (4320/hr), well
	// under the authenticated 5000/hr limit.
	proactiveRate = 1.2

	// quotaFraction is the remaining/limit ratio below which ingestion
	// must stop instead of draining the quota.
	quotaFraction = 0.10
)

// RateLimiter combines a token bucket that paces every request with the
// quota state reported by GitHub response headers.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	bucket    *rate.Limiter
}

// NewRateLimiter returns a limiter assuming a full authenticated quota.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining: 5000,
		limit:     5000,
		bucket:    rate.NewLimiter(rate.Limit(proactiveRate), 1),
	}
}

// Wait blocks until the token bucket admits the next request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// Update records the quota state from an API response.
func (r *RateLimiter) Update(resp *gh.Response) {
	if resp == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = resp.Rate.Remaining
	r.limit = resp.Rate.Limit
	r.resetTime = resp.Rate.Reset.Time
}

// QuotaLow reports whether the remaining quota has dropped below the
// critical fraction of the limit.
func (r *RateLimiter) QuotaLow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit > 0 && float64(r.remaining) < float64(r.limit)*quotaFraction
}

// Remaining returns the last reported remaining request count.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}
