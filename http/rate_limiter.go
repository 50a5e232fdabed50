package http

import (
	"math"
	"sync"
	"time"
)

const (
	idleBucketTTL   = 1 * time.Hour
	cleanupInterval = 30 * time.Minute
)

type bucket struct {
	remaining   int
	windowStart time.Time
}

// Decision is the limiter's answer for one request.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the whole number of seconds until the window resets, never
// below one.
func (d Decision) RetryAfter(now time.Time) int {
	secs := int(math.Ceil(d.ResetAt.Sub(now).Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// RateLimiter is a fixed-window limiter keyed by client. Each client gets
// limit requests per window; the window restarts on the first request after
// it ends.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*bucket
	now     func() time.Time
	done    chan struct{}
	stop    sync.Once
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go rl.evictLoop()
	return rl
}

func (r *RateLimiter) evictLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.done:
			return
		}
	}
}

// evictIdle forgets clients whose window started more than idleBucketTTL ago.
func (r *RateLimiter) evictIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idleBucketTTL)
	for client, b := range r.buckets {
		if b.windowStart.Before(cutoff) {
			delete(r.buckets, client)
		}
	}
}

// Stop ends the eviction goroutine. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stop.Do(func() { close(r.done) })
}

// Take spends one request from the client's window when one is left.
func (r *RateLimiter) Take(client string) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.buckets[client]
	if !ok || now.Sub(b.windowStart) >= r.window {
		b = &bucket{remaining: r.limit, windowStart: now}
		r.buckets[client] = b
	}

	d := Decision{Limit: r.limit, ResetAt: b.windowStart.Add(r.window)}
	if b.remaining > 0 {
		b.remaining--
		d.Allowed = true
	}
	d.Remaining = b.remaining
	return d
}

// Allow reports whether the client may make a request now.
func (r *RateLimiter) Allow(client string) bool {
	return r.Take(client).Allowed
}
