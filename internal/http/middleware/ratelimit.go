package middleware

import (
	"net/http"
	"sync"
	"time"
)

// visitorBucket tracks the token balance for a single client IP.
type visitorBucket struct {
	tokens float64
	seen   time.Time
}

// RateLimiter applies a per-IP token bucket. Contact submissions and chat
// turns are cheap, so the limits mostly exist to blunt form spam.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitorBucket
	perSec   float64
	burst    int
}

// NewRateLimiter allows perSec requests per second with the given burst per IP.
func NewRateLimiter(perSec float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitorBucket),
		perSec:   perSec,
		burst:    burst,
	}
	go rl.evictStale()
	return rl
}

// Allow reports whether a request from ip fits within the limit, consuming a
// token when it does.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitorBucket{tokens: float64(rl.burst), seen: now}
		rl.visitors[ip] = v
	}

	v.tokens += now.Sub(v.seen).Seconds() * rl.perSec
	if v.tokens > float64(rl.burst) {
		v.tokens = float64(rl.burst)
	}
	v.seen = now

	if v.tokens < 1 {
		return false
	}
	v.tokens--
	return true
}

func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if v.seen.Before(cutoff) {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit rejects requests over the configured per-IP rate with a 429.
func RateLimit(perSec float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(perSec, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			// chi's RealIP middleware rewrites this header upstream.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			if !limiter.Allow(ip) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
