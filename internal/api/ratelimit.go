package api

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a per-IP sliding-window limiter held in memory. It is
// sized for a single public instance; a multi-node deployment would need
// shared state behind it.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	requests map[string][]time.Time
}

// NewRateLimiter allows limit requests per window for each client IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		requests: make(map[string][]time.Time),
	}
}

// Middleware enforces the limit and answers 429 with a Retry-After
// header when it is exceeded.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if retryAfter, ok := rl.allow(ip); !ok {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			respondJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":               "rate limit exceeded, slow down",
				"retry_after_seconds": retryAfter,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow records the request and reports whether it fits the window.
// On rejection it returns the seconds until the window frees up.
func (rl *RateLimiter) allow(ip string) (int, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	kept := rl.requests[ip][:0]
	for _, ts := range rl.requests[ip] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	rl.requests[ip] = kept

	if len(kept) >= rl.limit {
		retryAfter := int(rl.window.Seconds()-now.Sub(kept[0]).Seconds()) + 1
		return retryAfter, false
	}

	rl.requests[ip] = append(kept, now)
	return 0, true
}

// clientIP prefers X-Forwarded-For so the limiter keys on the real
// client behind a proxy, taking the first hop when there are several.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host
}
