package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/reelorders/internal/domain/model"
	"github.com/polkiloo/reelorders/internal/server/http/dto"
)

// SettingsHandler serves the server status flag.
type SettingsHandler struct {
	facade SettingsFacade
	logger *slog.Logger
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(facade SettingsFacade, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{facade: facade, logger: logger}
}

// Status handles GET /api/settings/server-status.
func (h *SettingsHandler) Status(c *gin.Context) {
	status, err := h.facade.ServerStatus(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to fetch status")
		return
	}
	c.JSON(http.StatusOK, dto.ServerStatus{Status: string(status)})
}

// SetStatus handles PATCH /api/settings/server-status.
func (h *SettingsHandler) SetStatus(c *gin.Context) {
	var req dto.ServerStatus
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid status payload"})
		return
	}
	if err := h.facade.SetServerStatus(c.Request.Context(), model.ServerStatus(req.Status)); err != nil {
		abortWithError(c, h.logger, err, "Failed to update status")
		return
	}
	h.logger.Info("server status changed", slog.String("status", req.Status))
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
