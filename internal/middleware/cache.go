package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"hotelbooking/internal/config"
)

// bodyRecorder duplicates the response body into a buffer while forwarding
// it to the client, so a successful response can be stored afterwards.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	limit  int
}

func (w *bodyRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	if w.limit <= 0 || w.buf.Len()+len(b) <= w.limit {
		w.buf.Write(b)
	} else {
		// Oversized bodies are served but not cached.
		w.buf.Reset()
		w.limit = -1
	}
	return w.ResponseWriter.Write(b)
}

func cacheKey(prefix string, c echo.Context) string {
	r := c.Request()
	sum := sha1.Sum([]byte(c.Path() + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// ResponseCache caches successful JSON responses to GET endpoints in Redis
// for cfg.TTL.  Intended for the public browse/search routes whose results
// tolerate brief staleness (popular cities, featured deals, searches).
// Passes through untouched when disabled or when rdb is nil.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			ct := c.Response().Header().Get(echo.HeaderContentType)
			if rec.status == http.StatusOK && rec.limit >= 0 && strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
				// Request context may already be done; storing is best effort.
				_ = rdb.SetEx(context.Background(), key, rec.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}

// RateLimit applies a fixed-window counter per client IP and route.  The
// first request in a window creates the key with cfg.Window expiry; once
// the count passes cfg.Limit the request is rejected with 429 and a
// Retry-After header.  Redis errors (and a nil client) disable limiting so
// an unavailable Redis never blocks traffic.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := cfg.Prefix + ":" + ip + ":" + c.Request().Method + ":" + c.Path()
			ctx := c.Request().Context()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			remaining := int64(cfg.Limit) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Limit) {
				retry, err := rdb.TTL(ctx, key).Result()
				if err != nil || retry < 0 {
					retry = cfg.Window
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"statusCode": http.StatusTooManyRequests, "message": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}
