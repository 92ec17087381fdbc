package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Pinger is one readiness dependency. The composition root registers a
// pinger per backend it actually wired, so a memory-only deployment
// declares itself ready with no checks at all.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready, the readiness probe.
// Pings every registered dependency before declaring the gateway ready.
type ReadinessHandler struct {
	pingers []Pinger
}

func NewReadinessHandler(pingers ...Pinger) *ReadinessHandler {
	return &ReadinessHandler{pingers: pingers}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	for _, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			deps[p.Name()] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[p.Name()] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

// RedisPinger reports the session store's Redis backend.
type RedisPinger struct {
	Client *redis.Client
}

func (p RedisPinger) Name() string { return "redis" }

func (p RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

// MongoPinger reports the activity trail's Mongo backend.
type MongoPinger struct {
	DB *mongo.Database
}

func (p MongoPinger) Name() string { return "mongodb" }

func (p MongoPinger) Ping(ctx context.Context) error {
	if err := p.DB.Client().Ping(ctx, nil); err != nil {
		return err
	}
	return p.DB.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
