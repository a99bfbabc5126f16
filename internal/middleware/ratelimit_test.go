// File: internal/middleware/ratelimit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbridge/go-medbridge/internal/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddlewareBlocksAfterLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(&ratelimit.Config{
		WindowSize:    time.Minute,
		MaxAttempts:   2,
		CleanupPeriod: time.Hour,
		BanDuration:   time.Minute,
	})
	defer limiter.Stop()

	handler := RateLimitMiddleware(limiter, "Test")(okHandler())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	rr := send()
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Reset"))

	rr = send()
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	rr = send()
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "Too many attempts")
	assert.Contains(t, rr.Body.String(), `"banned":true`)
}

func TestAuthSuccessMiddlewareResetsWindowOn2xx(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(&ratelimit.Config{
		WindowSize:    time.Minute,
		MaxAttempts:   2,
		CleanupPeriod: time.Hour,
		BanDuration:   time.Minute,
	})
	defer limiter.Stop()

	status := http.StatusUnauthorized
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
	handler := RateLimitMiddleware(limiter, "Auth")(AuthSuccessMiddleware(limiter, "Auth")(inner))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	// One failed login burns an attempt.
	rr := send()
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Remaining"))

	// A successful login clears the window entirely.
	status = http.StatusOK
	rr = send()
	require.Equal(t, http.StatusOK, rr.Code)

	status = http.StatusUnauthorized
	rr = send()
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Remaining"), "window restarted after the success")
}
