package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/pkg/logger"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController handles liveness endpoints
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health reports service and database status
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Database: "up"}
	status := http.StatusOK
	if err := c.db.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("Health check: database unreachable")
		resp = dto.HealthResponse{Status: "degraded", Database: "down"}
		status = http.StatusServiceUnavailable
	}

	ctx.JSON(status, dto.NewAPIResponse(resp))
}

// Ping answers with pong
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
