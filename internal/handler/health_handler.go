package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is anything the readiness check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx).
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reports liveness and readiness.
type HealthHandler struct {
	database Pinger
	redis    Pinger
	log      *zap.Logger
}

// NewHealthHandler creates a health handler. redis may be nil when the rate
// limiter runs in memory.
func NewHealthHandler(database, redis Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{database: database, redis: redis, log: log}
}

// HealthResponse is the readiness report.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Live answers the liveness probe. Health routes are mounted at the root,
// outside the documented /api base path.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready pings the database and Redis. A Redis outage only degrades the service.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: map[string]string{}}
	status := http.StatusOK

	if err := h.database.Ping(ctx); err != nil {
		h.log.Error("database health check failed", zap.Error(err))
		resp.Checks["database"] = "unavailable"
		resp.Status = "down"
		status = http.StatusServiceUnavailable
	} else {
		resp.Checks["database"] = "ok"
	}

	switch {
	case h.redis == nil:
		resp.Checks["redis"] = "disabled"
	case h.redis.Ping(ctx) != nil:
		h.log.Warn("redis health check failed")
		resp.Checks["redis"] = "unavailable"
		if resp.Status == "ok" {
			resp.Status = "degraded"
		}
	default:
		resp.Checks["redis"] = "ok"
	}

	return c.JSON(status, resp)
}
