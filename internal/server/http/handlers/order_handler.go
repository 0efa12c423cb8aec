package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/reelorders/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Submit handles POST /api/orders.
func (h *OrderHandler) Submit(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid order payload"})
		return
	}

	order, err := h.facade.SubmitOrder(c.Request.Context(), req.Input())
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to create order")
		return
	}

	h.logger.Info("order created",
		slog.String("order", order.ID),
		slog.String("service_type", order.ServiceType),
		slog.Int("price", order.Price),
	)
	c.JSON(http.StatusCreated, dto.SubmitResponse{Success: true, ID: order.ID})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}

// Batch handles POST /api/orders/batch.
func (h *OrderHandler) Batch(c *gin.Context) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDs == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid IDs"})
		return
	}

	orders, err := h.facade.OrderHistory(c.Request.Context(), req.IDs)
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderList(orders))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderList(orders))
}

// Approve handles PATCH /api/orders/:id/approve.
func (h *OrderHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	if err := h.facade.ApproveOrder(c.Request.Context(), id); err != nil {
		abortWithError(c, h.logger, err, "Failed to approve order")
		return
	}
	h.logger.Info("order approved", slog.String("order", id))
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
