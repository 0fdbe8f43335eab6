package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/config"
)

// Without a Redis client both middlewares must be transparent.

func TestResponseCachePassThroughWithoutRedis(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache:", MaxBodyBytes: 1 << 20}
	mw := ResponseCache(cfg, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/cities/popular", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.JSON(http.StatusOK, echo.Map{"items": []int{}})
	}
	require.NoError(t, mw(next)(c))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitPassThroughWhenDisabled(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: false, Limit: 1, Window: time.Minute, Prefix: "rl:"}
	mw := RateLimit(cfg, nil)

	e := echo.New()
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
		require.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	e := echo.New()
	mk := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		return cacheKey("cache:", c)
	}
	a := mk("/v1/hotels/search?query=harbor&page=1")
	b := mk("/v1/hotels/search?query=harbor&page=2")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, mk("/v1/hotels/search?query=harbor&page=1"))
}
