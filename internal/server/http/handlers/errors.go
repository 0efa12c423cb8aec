package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/server/http/dto"
	"github.com/polkiloo/reelorders/internal/server/http/middleware"
)

// abortWithError writes the status matching err and a JSON error body.
// Unexpected errors are logged and reported with fallback only.
func abortWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status, message := http.StatusInternalServerError, fallback
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput):
		status, message = http.StatusBadRequest, detail(err)
	case errors.Is(err, domainErrors.ErrConstraintViolation):
		status, message = http.StatusBadRequest, "Missing or invalid order fields"
	case errors.Is(err, domainErrors.ErrNotFound):
		status, message = http.StatusNotFound, "Order not found"
	case errors.Is(err, domainErrors.ErrDuplicateKey):
		status, message = http.StatusConflict, "Order already exists"
	case errors.Is(err, domainErrors.ErrOrdersClosed):
		status, message = http.StatusServiceUnavailable, "Orders are closed right now"
	case errors.Is(err, domainErrors.ErrUnauthorized):
		status, message = http.StatusForbidden, middleware.UnauthorizedMessage
	default:
		logger.Error(fallback,
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(c)),
		)
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}

// detail strips the sentinel prefix from a wrapped validation error.
func detail(err error) string {
	msg := err.Error()
	prefix := domainErrors.ErrInvalidInput.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}
