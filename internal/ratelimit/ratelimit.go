package ratelimit

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"boardapi/internal/cache"
	"boardapi/internal/errors"
)

const (
	keyPrefix    = "ratelimit:signup:"
	redisTimeout = 500 * time.Millisecond
)

// RedisStore is a fixed-window limiter shared by every instance that talks to
// the same Redis. It implements middleware.RateLimiterStore.
type RedisStore struct {
	cache  *cache.Client
	limit  int
	window time.Duration
	log    *zap.Logger
}

var _ middleware.RateLimiterStore = (*RedisStore)(nil)

// NewRedisStore creates a store allowing limit requests per window per identifier.
func NewRedisStore(c *cache.Client, limit int, window time.Duration, log *zap.Logger) *RedisStore {
	return &RedisStore{cache: c, limit: limit, window: window, log: log}
}

// Allow counts one request for identifier. Redis failures let the request
// through so an outage never blocks sign-ups.
func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	count, err := s.cache.IncrWindow(ctx, keyPrefix+identifier, s.window)
	if err != nil {
		s.log.Warn("rate limit store unavailable, allowing request", zap.Error(err))
		return true, nil
	}
	return count <= int64(s.limit), nil
}

// NewMemoryStore returns a per-process limiter. It is a token bucket refilled
// at limit/window, so bursts of limit requests behave like the fixed window.
func NewMemoryStore(limit int, window time.Duration) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit) / window.Seconds()),
		Burst:     limit,
		ExpiresIn: 3 * window,
	})
}

// Middleware limits requests per client IP using store.
func Middleware(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "could not identify client",
				Code:  "FORBIDDEN",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			httpErr := errors.MapErrorToHTTP(errors.ErrTooManySignups)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}
