package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ecommerce-api/internal/cache"
	"ecommerce-api/internal/models"
	"ecommerce-api/internal/services"
)

type OrderHandler struct {
	service *services.OrderService
	cache   *cache.Cache
}

func NewOrderHandler(service *services.OrderService, c *cache.Cache) *OrderHandler {
	return &OrderHandler{
		service: service,
		cache:   c,
	}
}

type createOrderRequest struct {
	CustomerInfo models.CustomerInfo `json:"customerInfo" binding:"required"`
	CartID       string              `json:"cartId" binding:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder converts a cart into an order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req.CustomerInfo, req.CartID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Stock changed, cached product reads are stale now
	h.cache.DeleteByPrefix("product")

	respond(c, http.StatusCreated, "Order created successfully", order)
}

// CreateDirectOrder finalizes an order from client-submitted lines.
func (h *OrderHandler) CreateDirectOrder(c *gin.Context) {
	var input services.DirectOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	order, err := h.service.CreateOrderFromItems(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cache.DeleteByPrefix("product")

	respond(c, http.StatusCreated, "Order created successfully", order)
}

// GetOrder returns a single order by ID.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order retrieved successfully", order)
}

// GetOrderByNumber returns a single order by its order number.
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	order, err := h.service.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Order retrieved successfully", order)
}

// GetOrders lists orders newest first with pagination.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	orders, total, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success:    true,
		Message:    "Orders retrieved successfully",
		Data:       orders,
		Pagination: newPagination(page, limit, total),
	})
}

// GetOrdersByEmail returns a customer's order history.
func (h *OrderHandler) GetOrdersByEmail(c *gin.Context) {
	orders, err := h.service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// UpdateOrderStatus overwrites the status field.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Order status updated successfully", order)
}
