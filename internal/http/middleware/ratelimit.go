// In-memory token-bucket rate limiter with per-identity buckets and
// opportunistic garbage collection. Process-local; for horizontally scaled
// deployments prefer a distributed limiter to enforce global limits.
//
// Rejections flow through the standard error taxonomy so clients receive
// the same envelope shape as every other failure.
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/learners-arc/blackbox-ecom-backend/internal/apperr"
)

// keyFunc selects the identity used to key a rate-limit bucket.
//
// Implementations should return a stable string for the duration of a
// request (e.g. "user:<id>" or "ip:<addr>").
type keyFunc func(*gin.Context) string

// KeyByUserOrIP returns a keyFunc that prefers the authenticated user
// identity (from the Gin context under "userID", set by RequireAuth) and
// falls back to the client IP address. Keys are prefixed to avoid
// collisions between the two namespaces.
func KeyByUserOrIP() keyFunc {
	return func(c *gin.Context) string {
		if v, ok := c.Get("userID"); ok {
			if s, ok := v.(string); ok && s != "" {
				return "user:" + s
			}
		}
		return "ip:" + c.ClientIP()
	}
}

// visitor holds a single rate limiter and the last time it was seen.
// Used to opportunistically evict idle buckets.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-key token-bucket rate limiter.
//
// Buckets are created on demand and stored in an internal map guarded by a
// mutex. Idle buckets are evicted after a TTL via opportunistic cleanup
// during lookups to keep memory usage bounded. Safe for concurrent use.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFn    keyFunc
	mode     string
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter constructs a RateLimiter with the given tokens-per-second
// and burst size, keyed by keyFn. The deployment mode controls envelope
// verbosity on rejection.
//
//   - rps:   tokens replenished per second (0 allows no requests; use >0).
//   - burst: maximum burst size; values <= 0 are coerced to 1.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc, mode string) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		mode:     mode,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute, // evict idle entries after TTL
	}
}

// getVisitor returns (and updates) the limiter for key, creating it if
// absent. It also performs opportunistic GC of idle entries after ~5000
// lookups. GC runs before touching the requested visitor so an "old" bucket
// can be evicted even when it is the one being fetched.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	rl.cleanupN++
	if rl.cleanupN >= 5000 {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		lim := v.limiter
		rl.mu.Unlock()
		return lim
	}

	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	rl.mu.Unlock()
	return lim
}

// Handler returns a Gin middleware that enforces per-key token-bucket
// limits. Rejected requests receive 429 with the standard envelope
// (code RATE_LIMIT_EXCEEDED) and a minimal Retry-After header.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.keyFn(c)
		lim := rl.getVisitor(key)

		if lim.Allow() {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		app := apperr.RateLimited("Too many requests. Please try again later.")
		status, env := apperr.Format(app, rl.mode)
		env.RequestID = RequestIDFrom(c)
		c.AbortWithStatusJSON(status, env)
	}
}
