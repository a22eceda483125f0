package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"boardapi/internal/cache"
)

func TestRedisStore_FixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	defer c.Close()

	store := NewRedisStore(c, 2, time.Minute, zap.NewNop())

	for i := 0; i < 2; i++ {
		ok, err := store.Allow("10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := store.Allow("10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "third request inside the window is denied")

	ok, _ = store.Allow("10.0.0.2")
	assert.True(t, ok, "other clients have their own window")

	mr.FastForward(time.Minute)
	ok, _ = store.Allow("10.0.0.1")
	assert.True(t, ok, "window resets after expiry")
}

func TestRedisStore_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	defer c.Close()
	mr.Close()

	store := NewRedisStore(c, 1, time.Minute, zap.NewNop())
	ok, err := store.Allow("10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMiddleware_Returns429(t *testing.T) {
	e := echo.New()
	e.POST("/signup", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, Middleware(NewMemoryStore(5, time.Minute)))

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/signup", nil)
		req.RemoteAddr = "192.0.2.1:4000"
		last = httptest.NewRecorder()
		e.ServeHTTP(last, req)
		if i < 5 {
			require.Equal(t, http.StatusCreated, last.Code, "request %d", i+1)
		}
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Contains(t, last.Body.String(), "Too many sign-up attempts")
}
