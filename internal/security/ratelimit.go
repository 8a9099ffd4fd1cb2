package security

import (
	"sync"
	"time"
)

// RateLimiter is a process-wide sliding window over attempt timestamps,
// keyed by an arbitrary identifier. Old attempts are pruned lazily on each
// check. An attempt is recorded only when the call is allowed, so rejected
// calls do not extend the lockout.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (r *RateLimiter) Allow(identifier string, maxAttempts int, window time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	recent := r.attempts[identifier][:0]
	for _, t := range r.attempts[identifier] {
		if now.Sub(t) < window {
			recent = append(recent, t)
		}
	}

	if len(recent) >= maxAttempts {
		r.attempts[identifier] = recent
		return false
	}

	r.attempts[identifier] = append(recent, now)
	return true
}
