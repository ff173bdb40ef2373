package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// rateLimiter is a small sliding-window limiter keyed by client IP.
// It only guards the room-creation and join endpoints, so the state
// stays tiny and is pruned as it is read.
type rateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		limit:  30,
		window: time.Minute,
		hits:   make(map[string][]time.Time),
	}
}

func (l *rateLimiter) Allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) >= l.limit {
		l.hits[key] = recent
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
