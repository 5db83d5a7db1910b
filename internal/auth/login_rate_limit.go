package auth

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LoginRateLimiter applies a per-IP sliding window to the login endpoint.
// State lives in process memory only; a restart forgets all counters, which
// is acceptable for abuse throttling.
type LoginRateLimiter struct {
	mu            sync.Mutex
	maxHits       int
	window        time.Duration
	hitsByIP      map[string][]time.Time
	maxTrackedIPs int
}

func NewLoginRateLimiter(maxHits int, window time.Duration) *LoginRateLimiter {
	if maxHits <= 0 {
		maxHits = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return &LoginRateLimiter{
		maxHits:       maxHits,
		window:        window,
		hitsByIP:      make(map[string][]time.Time),
		maxTrackedIPs: 5000,
	}
}

func (l *LoginRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := l.allow(clientIP(r), time.Now().UTC())
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			writeError(w, http.StatusTooManyRequests, "too many login attempts")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *LoginRateLimiter) allow(ip string, now time.Time) (bool, time.Duration) {
	threshold := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.hitsByIP[ip][:0:len(l.hitsByIP[ip])]
	for _, hit := range l.hitsByIP[ip] {
		if hit.After(threshold) {
			recent = append(recent, hit)
		}
	}

	if len(recent) >= l.maxHits {
		l.hitsByIP[ip] = recent
		retryAfter := recent[0].Add(l.window).Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return false, retryAfter
	}

	l.hitsByIP[ip] = append(recent, now)
	if len(l.hitsByIP) > l.maxTrackedIPs {
		l.evictIdle(threshold)
	}

	return true, 0
}

// evictIdle drops IPs whose newest hit fell out of the window. Called with
// the mutex held.
func (l *LoginRateLimiter) evictIdle(threshold time.Time) {
	for ip, hits := range l.hitsByIP {
		if len(hits) == 0 || hits[len(hits)-1].Before(threshold) {
			delete(l.hitsByIP, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if forwarded != "" {
		if ip := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0]); ip != "" {
			return ip
		}
	}

	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return "unknown"
}
