package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := SecurityLoggingMiddleware(nil, detector)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < MaxRequestsPerWindow; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	// Next request should be blocked
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	detector.mu.Lock()
	count := detector.requests[ip]
	detector.mu.Unlock()
	assert.Equal(t, MaxRequestsPerWindow+1, count)
}

func TestSuspiciousActivityDetector_WindowResets(t *testing.T) {
	clock := quartz.NewMock(t)
	detector := NewSuspiciousActivityDetectorWithClock(clock, 2)

	assert.True(t, detector.RecordRequest("a"))
	assert.True(t, detector.RecordRequest("a"))
	assert.False(t, detector.RecordRequest("a"))
	assert.True(t, detector.RecordRequest("b"), "limits are per ip")

	clock.Advance(DetectorWindow + time.Second)

	assert.True(t, detector.RecordRequest("a"))
}

func TestSecurityLoggingMiddleware_WagerBudget(t *testing.T) {
	detector := NewSuspiciousActivityDetectorWithClock(quartz.NewMock(t), 8)
	handler := SecurityLoggingMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(method, path string) int {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// 8 / WagerShareOfRequests = 2 placements per window
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/v1/wagers/solo"))
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/v1/wagers/group"))
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "/api/v1/wagers/solo"))

	// reads still go through on the general budget
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/v1/wagers"))
}

func TestNewSuspiciousActivityDetector_MinimumWagerBudget(t *testing.T) {
	detector := NewSuspiciousActivityDetectorWithClock(quartz.NewMock(t), 1)
	assert.True(t, detector.RecordWager("a"))
	assert.False(t, detector.RecordWager("a"))
}
