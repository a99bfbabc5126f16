// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(maxAttempts int, window, ban time.Duration) *MemoryLimiter {
	return NewMemoryLimiter(&Config{
		WindowSize:    window,
		MaxAttempts:   maxAttempts,
		CleanupPeriod: time.Hour,
		BanDuration:   ban,
	})
}

func TestAllowCountsDownAndBans(t *testing.T) {
	limiter := newTestLimiter(3, time.Minute, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("1.2.3.4")
		require.True(t, allowed, "attempt %d should pass", i+1)
		assert.Equal(t, 3-(i+1), info.Remaining)
		assert.False(t, info.Banned)
	}

	allowed, info := limiter.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.True(t, info.Banned)
	assert.Positive(t, info.RetryAfter)

	// The ban sticks for subsequent attempts.
	allowed, info = limiter.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.True(t, info.Banned)

	// Other clients are unaffected.
	allowed, _ = limiter.Allow("5.6.7.8")
	assert.True(t, allowed)
}

func TestWindowExpiryResetsCount(t *testing.T) {
	limiter := newTestLimiter(2, 20*time.Millisecond, time.Minute)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("client")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("client")
	require.True(t, allowed)

	time.Sleep(30 * time.Millisecond)

	allowed, info := limiter.Allow("client")
	assert.True(t, allowed, "a fresh window starts after the old one expires")
	assert.Equal(t, 1, info.Remaining)
}

func TestBanExpiresAfterDuration(t *testing.T) {
	limiter := newTestLimiter(1, 10*time.Millisecond, 20*time.Millisecond)
	defer limiter.Stop()

	limiter.Allow("client")
	allowed, info := limiter.Allow("client")
	require.False(t, allowed)
	require.True(t, info.Banned)

	time.Sleep(30 * time.Millisecond)

	allowed, _ = limiter.Allow("client")
	assert.True(t, allowed, "ban lifts once BanDuration has passed")
}

func TestRecordSuccessClearsWindow(t *testing.T) {
	limiter := newTestLimiter(2, time.Minute, time.Minute)
	defer limiter.Stop()

	limiter.Allow("client")
	limiter.Allow("client")
	limiter.RecordSuccess("client")

	allowed, info := limiter.Allow("client")
	assert.True(t, allowed, "a success wipes the failed-attempt history")
	assert.Equal(t, 1, info.Remaining)
}

func TestStopIsIdempotent(t *testing.T) {
	limiter := newTestLimiter(1, time.Minute, time.Minute)
	limiter.Stop()
	limiter.Stop()
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:54321"
	assert.Equal(t, "10.0.0.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "172.16.0.9")
	assert.Equal(t, "172.16.0.9", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 172.16.0.9")
	assert.Equal(t, "203.0.113.7", GetClientIP(r), "first hop of X-Forwarded-For wins")
}
