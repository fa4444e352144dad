package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/facility-reservation/internal/config"
)

func newRedisClientForTest(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})
	return server, client
}

func limitedApp(cfg config.RateLimitConfig, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	g := e.Group("/api/v1/authentication")
	g.Use(AuthRateLimit(cfg, rdb))
	g.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func postLogin(e *echo.Echo, clientIP string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/authentication/login", nil)
	if clientIP != "" {
		req.Header.Set(echo.HeaderXRealIP, clientIP)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func testLimitConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		Prefix:         "rl:test",
	}
}

func TestAuthRateLimitDrainsBucket(t *testing.T) {
	_, rdb := newRedisClientForTest(t)
	e := limitedApp(testLimitConfig(), rdb)

	first := postLogin(e, "203.0.113.7")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := postLogin(e, "203.0.113.7")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := postLogin(e, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
	assert.Contains(t, third.Body.String(), "retry_after")
}

func TestAuthRateLimitBucketsArePerClient(t *testing.T) {
	_, rdb := newRedisClientForTest(t)
	e := limitedApp(testLimitConfig(), rdb)

	// Drain one client's bucket.
	postLogin(e, "203.0.113.7")
	postLogin(e, "203.0.113.7")
	blocked := postLogin(e, "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, blocked.Code)

	// A different client still has a full bucket.
	other := postLogin(e, "198.51.100.9")
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestAuthRateLimitRefillsOverTime(t *testing.T) {
	_, rdb := newRedisClientForTest(t)
	cfg := testLimitConfig()
	cfg.RefillInterval = 50 * time.Millisecond
	e := limitedApp(cfg, rdb)

	postLogin(e, "203.0.113.7")
	postLogin(e, "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, postLogin(e, "203.0.113.7").Code)

	// The script computes refill from wall-clock milliseconds it receives
	// as an argument, so waiting past the interval earns a token.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, http.StatusOK, postLogin(e, "203.0.113.7").Code)
}

func TestAuthRateLimitPassThrough(t *testing.T) {
	// No redis client configured.
	e := limitedApp(testLimitConfig(), nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, postLogin(e, "203.0.113.7").Code)
	}

	// Limiter disabled by config.
	_, rdb := newRedisClientForTest(t)
	cfg := testLimitConfig()
	cfg.Enabled = false
	e = limitedApp(cfg, rdb)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, postLogin(e, "203.0.113.7").Code)
	}
}

func TestAuthRateLimitFailsOpenWhenRedisDown(t *testing.T) {
	server, rdb := newRedisClientForTest(t)
	e := limitedApp(testLimitConfig(), rdb)

	require.Equal(t, http.StatusOK, postLogin(e, "203.0.113.7").Code)

	// Losing redis must not lock anyone out of login.
	server.Close()
	assert.Equal(t, http.StatusOK, postLogin(e, "203.0.113.7").Code)
}
