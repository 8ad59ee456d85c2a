package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	pg     *pgxpool.Pool
	ch     clickhouse.Conn
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(pg *pgxpool.Pool, ch clickhouse.Conn, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		pg:     pg,
		ch:     ch,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Health handles the liveness endpoint
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

// Ready handles the readiness endpoint, pinging both stores
func (h *HealthHandler) Ready(c *gin.Context) {
	services := make(map[string]string)
	allHealthy := true

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.pg != nil {
		if err := h.pg.Ping(ctx); err != nil {
			h.logger.Error("postgres health check failed", zap.Error(err))
			services["postgres"] = "unhealthy"
			allHealthy = false
		} else {
			services["postgres"] = "healthy"
		}
	}

	if h.ch != nil {
		if err := h.ch.Ping(ctx); err != nil {
			h.logger.Error("clickhouse health check failed", zap.Error(err))
			services["clickhouse"] = "unhealthy"
			allHealthy = false
		} else {
			services["clickhouse"] = "healthy"
		}
	}

	status := "ready"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:   status,
		Services: services,
	})
}
