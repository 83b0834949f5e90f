package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a fixed-window counter per key. A nil limiter allows
// everything.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	buckets map[string]bucket
}

type bucket struct {
	count   int
	expires time.Time
}

func NewRateLimiter(limit int, win time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if win <= 0 {
		win = time.Minute
	}
	return &RateLimiter{
		window:  win,
		limit:   limit,
		buckets: make(map[string]bucket),
	}
}

// Allow counts one hit for key and reports whether it is within budget.
func (rl *RateLimiter) Allow(key string) bool {
	if rl == nil {
		return true
	}
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w := rl.buckets[key]
	if now.After(w.expires) {
		w = bucket{expires: now.Add(rl.window)}
	}
	if w.count >= rl.limit {
		rl.buckets[key] = w
		return false
	}
	w.count++
	rl.buckets[key] = w

	if len(rl.buckets) > rl.limit*50 {
		rl.sweep(now)
	}
	return true
}

// sweep drops expired windows. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.buckets {
		if now.After(w.expires) {
			delete(rl.buckets, k)
		}
	}
}

// Limit rejects requests from clients over their budget with 429. Proxy
// headers identify the client only when trustProxy is set.
func Limit(rl *RateLimiter, trustProxy bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(ClientIP(r, trustProxy)) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the socket address of r. With trustProxy it prefers the
// proxy headers, which any client can otherwise set.
func ClientIP(r *http.Request, trustProxy bool) string {
	if r == nil {
		return ""
	}
	if !trustProxy {
		return remoteHost(r)
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xrip := strings.TrimSpace(r.Header.Get("X-Real-IP")); xrip != "" {
		return xrip
	}
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
