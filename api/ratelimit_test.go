package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func limitedRequest(t *testing.T, h http.Handler, remoteIP string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	req.RemoteAddr = remoteIP + ":51234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	limiter := NewRateLimiter(3)
	h := limiter.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, limitedRequest(t, h, "10.0.0.1").Code)
	}

	rec := limitedRequest(t, h, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"detail":"Rate limit exceeded. Please slow down."}`, rec.Body.String())
}

func TestRateLimiterBucketsArePerIP(t *testing.T) {
	limiter := NewRateLimiter(2)
	h := limiter.Middleware(okHandler())

	require.Equal(t, http.StatusOK, limitedRequest(t, h, "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, limitedRequest(t, h, "10.0.0.1").Code)
	require.Equal(t, http.StatusTooManyRequests, limitedRequest(t, h, "10.0.0.1").Code)

	// A different client still has a full bucket.
	assert.Equal(t, http.StatusOK, limitedRequest(t, h, "10.0.0.2").Code)
}

func TestRateLimiterUsesForwardedFor(t *testing.T) {
	limiter := NewRateLimiter(1)
	h := limiter.Middleware(okHandler())

	send := func(forwarded string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
		req.RemoteAddr = "127.0.0.1:9000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, send("1.2.3.4").Code)
	assert.Equal(t, http.StatusTooManyRequests, send("1.2.3.4, 5.6.7.8").Code)
	assert.Equal(t, http.StatusOK, send("5.6.7.8").Code)
}

func TestRateLimiterNonPositiveFallsBack(t *testing.T) {
	for _, perMinute := range []int{0, -5} {
		limiter := NewRateLimiter(perMinute)
		assert.Equal(t, 10, limiter.burst)

		h := limiter.Middleware(okHandler())
		assert.Equal(t, http.StatusOK, limitedRequest(t, h, "10.0.0.9").Code)
	}
}

func TestSeparateLimitersHaveSeparateBuckets(t *testing.T) {
	// Analyze and compare are wired with one limiter each, so draining one
	// route's quota must not block the other.
	analyze := NewRateLimiter(1).Middleware(okHandler())
	compare := NewRateLimiter(1).Middleware(okHandler())

	require.Equal(t, http.StatusOK, limitedRequest(t, analyze, "10.0.0.1").Code)
	require.Equal(t, http.StatusTooManyRequests, limitedRequest(t, analyze, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, limitedRequest(t, compare, "10.0.0.1").Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		want      string
	}{
		{"host and port", "192.168.1.5:4321", "", "192.168.1.5"},
		{"no port", "192.168.1.5", "", "192.168.1.5"},
		{"forwarded wins", "127.0.0.1:80", "203.0.113.7", "203.0.113.7"},
		{"first forwarded hop", "127.0.0.1:80", "203.0.113.7, 10.0.0.1", "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
