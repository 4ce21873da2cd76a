package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler serves the liveness and readiness probes. Liveness only
// confirms the process responds; readiness pings the backing stores.
type HealthHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthHandler(db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{mongo: db, redis: rdb}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness reports 200 when MongoDB and Redis both answer a ping within
// the probe timeout, 503 with per-dependency detail otherwise.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	deps := map[string]dependencyStatus{
		"mongodb": h.checkMongo(ctx),
		"redis":   h.checkRedis(ctx),
	}

	status, code := "ok", http.StatusOK
	for _, d := range deps {
		if d.Status != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	return c.JSON(code, readinessResponse{Status: status, Dependencies: deps})
}

func (h *HealthHandler) checkMongo(ctx context.Context) dependencyStatus {
	if err := h.mongo.Client().Ping(ctx, nil); err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}
