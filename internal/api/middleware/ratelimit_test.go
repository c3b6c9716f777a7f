package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"customer-service/internal/config"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(cfg config.RateLimitConfig) *RateLimiterMiddleware {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRateLimiterMiddleware(cfg, logger)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterDisabledPassesThrough(t *testing.T) {
	rl := newTestLimiter(config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1})
	wrapped := rl.Middleware(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/customers", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		wrapped.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestRateLimiterRejectsAboveBurst(t *testing.T) {
	rl := newTestLimiter(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2})
	wrapped := rl.Middleware(okHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/customers", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rr := httptest.NewRecorder()
		wrapped.ServeHTTP(rr, req)
		statuses = append(statuses, rr.Code)
	}

	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
}

func TestRateLimiterTracksClientsIndependently(t *testing.T) {
	rl := newTestLimiter(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1})
	wrapped := rl.Middleware(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/customers", nil)
	first.RemoteAddr = "10.0.0.3:1234"
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, first)
	assert.Equal(t, http.StatusOK, rr.Code)

	blocked := httptest.NewRequest(http.MethodGet, "/customers", nil)
	blocked.RemoteAddr = "10.0.0.3:1234"
	rr = httptest.NewRecorder()
	wrapped.ServeHTTP(rr, blocked)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	other := httptest.NewRequest(http.MethodGet, "/customers", nil)
	other.RemoteAddr = "10.0.0.4:1234"
	rr = httptest.NewRecorder()
	wrapped.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestExtractIPPrefersForwardedFor(t *testing.T) {
	rl := newTestLimiter(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1})

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.5")
	assert.Equal(t, "203.0.113.9", rl.extractIP(req))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "203.0.113.10")
	assert.Equal(t, "203.0.113.10", rl.extractIP(req))

	req.Header.Del("X-Real-IP")
	assert.Equal(t, "10.0.0.5", rl.extractIP(req))
}
