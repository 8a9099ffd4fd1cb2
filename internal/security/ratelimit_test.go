package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginWindow = 15 * time.Minute

func newFakeClockLimiter(start time.Time) (*RateLimiter, *time.Time) {
	now := start
	r := NewRateLimiter()
	r.now = func() time.Time { return now }
	return r, &now
}

func TestRateLimiter_WindowExhaustion(t *testing.T) {
	t.Parallel()

	r, _ := newFakeClockLimiter(time.Now())

	for i := 0; i < 5; i++ {
		assert.True(t, r.Allow("k", 5, loginWindow), "attempt %d should pass", i+1)
	}
	assert.False(t, r.Allow("k", 5, loginWindow), "6th attempt should be limited")
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	t.Parallel()

	r, now := newFakeClockLimiter(time.Now())

	for i := 0; i < 5; i++ {
		require.True(t, r.Allow("k", 5, loginWindow))
	}
	require.False(t, r.Allow("k", 5, loginWindow))

	*now = now.Add(loginWindow + time.Second)
	assert.True(t, r.Allow("k", 5, loginWindow), "attempts outside the window are pruned")
}

func TestRateLimiter_RejectedCallDoesNotExtendLockout(t *testing.T) {
	t.Parallel()

	r, now := newFakeClockLimiter(time.Now())

	for i := 0; i < 5; i++ {
		require.True(t, r.Allow("k", 5, loginWindow))
	}

	// Hammering while limited must not push the unlock time out.
	*now = now.Add(10 * time.Minute)
	require.False(t, r.Allow("k", 5, loginWindow))

	*now = now.Add(5*time.Minute + time.Second)
	assert.True(t, r.Allow("k", 5, loginWindow))
}

func TestRateLimiter_IdentifiersAreIndependent(t *testing.T) {
	t.Parallel()

	r, _ := newFakeClockLimiter(time.Now())

	for i := 0; i < 5; i++ {
		require.True(t, r.Allow("login_a@x.com", 5, loginWindow))
	}
	require.False(t, r.Allow("login_a@x.com", 5, loginWindow))
	assert.True(t, r.Allow("login_b@x.com", 5, loginWindow))
}
