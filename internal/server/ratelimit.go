package server

import (
	"net/http"
	"sync"
	"time"
)

type visitor struct {
	requests   int
	resetTimer *time.Timer
}

// rateLimiter caps requests per IP inside a sliding window.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	interval time.Duration
}

func newRateLimiter(limit int, interval time.Duration) *rateLimiter {
	return &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		interval: interval,
	}
}

func (rl *rateLimiter) limitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr

		rl.mu.Lock()
		v, exists := rl.visitors[ip]
		if !exists {
			v = &visitor{}
			rl.visitors[ip] = v
			v.resetTimer = time.AfterFunc(rl.interval, func() {
				rl.mu.Lock()
				delete(rl.visitors, ip)
				rl.mu.Unlock()
			})
		}
		v.requests++
		exceeded := v.requests > rl.limit
		rl.mu.Unlock()

		if exceeded {
			http.Error(w, "Too many requests, please try again later", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
