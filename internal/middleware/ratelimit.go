// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// cleanupInterval is how often idle buckets are reaped.
const cleanupInterval = 5 * time.Minute

// bucket holds the request timestamps for one client key, oldest first.
type bucket struct {
	mu   sync.Mutex
	hits []time.Time
}

// prune drops timestamps at or before cutoff. Hits are appended in
// order, so only a leading prefix can be stale.
func (b *bucket) prune(cutoff time.Time) {
	i := 0
	for i < len(b.hits) && !b.hits[i].After(cutoff) {
		i++
	}
	if i > 0 {
		b.hits = append(b.hits[:0], b.hits[i:]...)
	}
}

// RateLimiter provides sliding-window rate limiting for the expensive
// AI generation endpoints. Authenticated requests are keyed per user so
// office NATs don't share a bucket; anonymous ones fall back to the
// client IP.
type RateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
	stopCh  chan struct{}
}

// NewRateLimiter creates a rate limiter that allows limit requests per
// window. It starts a background goroutine to clean up expired entries.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
	}
	go rl.reapLoop()
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) reapLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// bucketFor returns the bucket for key, creating it if needed.
func (rl *RateLimiter) bucketFor(key string) *bucket {
	rl.mu.RLock()
	b := rl.buckets[key]
	rl.mu.RUnlock()
	if b != nil {
		return b
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if b = rl.buckets[key]; b == nil {
		b = &bucket{}
		rl.buckets[key] = b
	}
	return b
}

// allow records a hit for key and reports whether it is within the limit.
func (rl *RateLimiter) allow(key string) bool {
	b := rl.bucketFor(key)
	now := time.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.prune(now.Add(-rl.window))
	if len(b.hits) >= rl.limit {
		return false
	}
	b.hits = append(b.hits, now)
	return true
}

// cleanup removes buckets whose newest hit has aged out of the window.
func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		b.mu.Lock()
		idle := len(b.hits) == 0 || !b.hits[len(b.hits)-1].After(cutoff)
		b.mu.Unlock()
		if idle {
			delete(rl.buckets, key)
		}
	}
}

// Middleware returns an HTTP middleware that rate-limits by user id
// when a session is loaded, otherwise by client IP. Must run after
// LoadSession so authenticated traffic is keyed correctly.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if sess := SessionFromCtx(r.Context()); sess != nil {
			key = "user:" + sess.UserID.String()
		}
		if !rl.allow(key) {
			writeError(w, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please slow down.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the originating client.
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
