// Package ratelimiter throttles request bursts per client.
package ratelimiter

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleTTL is how long a client's bucket survives without traffic.
const idleTTL = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles each client with its own token bucket.
type RateLimiter struct {
	perMinute float64
	burst     int
	now       func() time.Time

	mu      sync.Mutex
	clients map[string]*entry
}

// NewRateLimiter allows perMinute events per minute per client, with bursts of up to burst.
func NewRateLimiter(perMinute float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		perMinute: perMinute,
		burst:     burst,
		now:       time.Now,
		clients:   make(map[string]*entry),
	}
}

// Allow reports whether the client identified by key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	e, ok := rl.clients[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(rl.perMinute/60), rl.burst)}
		rl.clients[key] = e
	}
	e.lastSeen = now
	rl.evict(now)
	return e.limiter.AllowN(now, 1)
}

// evict drops buckets idle for longer than idleTTL. Caller holds mu.
func (rl *RateLimiter) evict(now time.Time) {
	for k, e := range rl.clients {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(rl.clients, k)
		}
	}
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			slog.Warn("[RATE LIMIT] request rejected", "path", c.FullPath(), "remote_addr", c.ClientIP())
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
