package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/bookcourt/bookstore/internal/domain"
)

// OrderHandler обслуживает эндпоинты заказов поверх сервиса ядра.
type OrderHandler struct {
	service OrderService
	logger  *log.Entry
}

// NewOrderHandler создаёт handler заказов.
func NewOrderHandler(service OrderService, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.WithField("component", "http-orders")
	}
	return &OrderHandler{service: service, logger: logger}
}

// Create обрабатывает POST /orders: оформляет заказ из корзины вызывающего.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.service.Create(c.Request.Context(), currentUser(c), req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List обрабатывает GET /orders: заказы вызывающего по возрастанию placed_at.
func (h *OrderHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	orders, err := h.service.List(c.Request.Context(), currentUser(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": toOrderListResponse(orders)})
}

// UpdateStatus обрабатывает PATCH /orders/:orderId (только для повышенной роли).
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("orderId"), domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Delete обрабатывает DELETE /orders/:orderId (мягкое удаление, только
// для повышенной роли).
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("orderId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Items обрабатывает GET /orders/:orderId/items.
func (h *OrderHandler) Items(c *gin.Context) {
	items, err := h.service.Items(c.Request.Context(), currentUser(c), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]orderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toOrderItemResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// Item обрабатывает GET /orders/:orderId/items/:itemId.
func (h *OrderHandler) Item(c *gin.Context) {
	item, err := h.service.Item(c.Request.Context(), currentUser(c), c.Param("orderId"), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderItemResponse(item))
}

// History обрабатывает GET /orders/:orderId/history.
func (h *OrderHandler) History(c *gin.Context) {
	events, err := h.service.History(c.Request.Context(), currentUser(c), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": toTimelineResponse(events)})
}
