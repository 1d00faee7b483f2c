package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

func limitedRouter(l *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func ping(r *gin.Engine, remote string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = remote
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	r := limitedRouter(NewRateLimiter(0.001, 2))

	assert.Equal(t, http.StatusOK, ping(r, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, ping(r, "10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, ping(r, "10.0.0.1:1002"))

	// separate bucket per client
	assert.Equal(t, http.StatusOK, ping(r, "10.0.0.2:1000"))
}

func TestRateLimiter_ZeroRateIsUnlimited(t *testing.T) {
	r := limitedRouter(NewRateLimiter(0, 0))

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, ping(r, "10.0.0.1:1000"))
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2026, 2, 27, 15, 0, 0, 0, time.UTC)
	l := NewRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.allow("a")
	now = now.Add(3 * time.Minute)
	l.allow("b")
	now = now.Add(3 * time.Minute)

	assert.Equal(t, 1, l.Cleanup())
	assert.Equal(t, 1, len(l.visitors))
	_, ok := l.visitors["b"]
	assert.Equal(t, true, ok)
}
