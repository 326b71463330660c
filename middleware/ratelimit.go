// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielhkuo/volunteer-portal/metrics"
)

const (
	sweepInterval = time.Minute
	clientTTL     = 3 * time.Minute
)

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps one token bucket per client IP. Idle clients are swept
// on access rather than by a background goroutine.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	r         rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time

	trustProxy bool
}

// NewRateLimiter keys clients by RemoteAddr, or by the forwarded client IP
// when trustProxy is set.
func NewRateLimiter(rps float64, burst int, trustProxy bool) *RateLimiter {
	return &RateLimiter{
		clients:    make(map[string]*client),
		r:          rate.Limit(rps),
		burst:      burst,
		trustProxy: trustProxy,
		lastSweep:  time.Now(),
		now:        time.Now,
	}
}

// Allow reports whether the client identified by key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.get(key).AllowN(rl.now(), 1)
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > sweepInterval {
		for k, c := range rl.clients {
			if now.Sub(c.seen) > clientTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	if c, ok := rl.clients[key]; ok {
		c.seen = now
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[key] = &client{lim: l, seen: now}
	return l
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Limit wraps a handler so each client IP is held to the configured rate
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(GetClientIP(r, rl.trustProxy)) {
			metrics.RateLimitedTotal.Inc()
			w.Header().Set("Retry-After", "1")
			ErrorResponse(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next(w, r)
	}
}
