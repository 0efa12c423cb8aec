package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/reelorders/internal/server/http/dto"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	facade HealthFacade
	logger *slog.Logger
}

func NewHealthHandler(facade HealthFacade, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{facade: facade, logger: logger}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Environment: h.facade.Environment()})
}

// Ready handles GET /api/ready.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.facade.Ready(c.Request.Context()); err != nil {
		h.logger.Warn("readiness check failed", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Store unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ready", Environment: h.facade.Environment()})
}
