package middleware

import (
	"net/http"
	"sync"
	"time"
)

type clientWindow struct {
	windowStart time.Time
	requests    int
}

// IPThrottle is a fixed-window per-IP request limiter guarding the whole
// API surface. It is independent of the per-user daily generation quota,
// which the generation service enforces against the database.
type IPThrottle struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *IPThrottle {
	t := &IPThrottle{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}
	go t.evictStale()
	return t
}

func (t *IPThrottle) evictStale() {
	ticker := time.NewTicker(t.window)
	defer ticker.Stop()
	for range ticker.C {
		t.mu.Lock()
		for ip, c := range t.clients {
			if time.Since(c.windowStart) > 2*t.window {
				delete(t.clients, ip)
			}
		}
		t.mu.Unlock()
	}
}

// allow records one request from ip and reports whether it is within the
// current window's budget.
func (t *IPThrottle) allow(ip string) bool {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.clients[ip]
	if !ok || now.Sub(c.windowStart) > t.window {
		t.clients[ip] = &clientWindow{windowStart: now, requests: 1}
		return true
	}

	c.requests++
	return c.requests <= t.limit
}

func (t *IPThrottle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.allow(r.RemoteAddr) {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
