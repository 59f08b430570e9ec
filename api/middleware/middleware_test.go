package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/use-agent/kanoon/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	e := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(identityKey))
	})
	e.POST("/scrape", handlers...)
	return e
}

func post(e *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/scrape", nil)
	req.RemoteAddr = "203.0.113.7:4242"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	e := newEngine(Auth([]string{"k1", "", "k2"}))

	tests := []struct {
		name    string
		headers map[string]string
		status  int
		body    string
	}{
		{"missing", nil, http.StatusUnauthorized, ""},
		{"wrong", map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized, ""},
		{"x-api-key", map[string]string{"X-API-Key": "k1"}, http.StatusOK, "k1"},
		{"bearer", map[string]string{"Authorization": "Bearer k2"}, http.StatusOK, "k2"},
		{"basic is ignored", map[string]string{"Authorization": "Basic k2"}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(e, tt.headers)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
			}
		})
	}
}

func TestAuth_NoKeysIsOpen(t *testing.T) {
	for _, keys := range [][]string{nil, {""}} {
		w := post(newEngine(Auth(keys)), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	e := newEngine(RateLimit(context.Background(), config.RateLimitConfig{RequestsPerSecond: 0, Burst: 1}))
	for range 10 {
		assert.Equal(t, http.StatusOK, post(e, nil).Code)
	}
}

func TestRateLimit_PerIdentity(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := newEngine(
		Auth([]string{"a", "b"}),
		RateLimit(ctx, config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2}),
	)

	keyA := map[string]string{"X-API-Key": "a"}
	keyB := map[string]string{"X-API-Key": "b"}

	assert.Equal(t, http.StatusOK, post(e, keyA).Code)
	assert.Equal(t, http.StatusOK, post(e, keyA).Code)

	w := post(e, keyA)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"RATE_LIMITED"`)

	// Separate bucket per key.
	assert.Equal(t, http.StatusOK, post(e, keyB).Code)
}

func TestLimiterSet_Evict(t *testing.T) {
	s := &limiterSet{limiters: make(map[string]*limiterEntry), limit: 1, burst: 1}
	now := time.Now()

	s.get("old", now.Add(-2*time.Hour))
	s.get("fresh", now)
	s.evict(now.Add(-1 * time.Hour))

	assert.NotContains(t, s.limiters, "old")
	assert.Contains(t, s.limiters, "fresh")
}
