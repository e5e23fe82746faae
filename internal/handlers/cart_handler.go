package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommerce-api/internal/services"
)

// Session identifier header, supplied by the storefront.
const sessionHeader = "x-session-id"

type CartHandler struct {
	service *services.CartService
}

func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the session's cart, minting a session ID (and an empty
// cart) for first-time visitors.
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		sessionID = h.service.GenerateSessionID()
	}

	cart, err := h.service.GetOrCreate(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success:   true,
		Message:   "Cart retrieved successfully",
		Data:      cart,
		SessionID: sessionID,
	})
}

// AddToCart adds a product line or merges into an existing one.
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		sessionID = h.service.GenerateSessionID()
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), sessionID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success:   true,
		Message:   "Product added to cart successfully",
		Data:      cart,
		SessionID: sessionID,
	})
}

// UpdateCartItem replaces a line's quantity.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	cart, err := h.service.UpdateItem(c.Request.Context(), sessionID, c.Param("productId"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Cart item updated successfully", cart)
}

// RemoveFromCart drops a line from the cart.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID, ok := h.requireSession(c)
	if !ok {
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), sessionID, c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Product removed from cart successfully", cart)
}

// ClearCart empties the whole cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, ok := h.requireSession(c)
	if !ok {
		return
	}

	cart, err := h.service.Clear(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Cart cleared successfully", cart)
}

// requireSession rejects mutating requests that arrive without a session
// header; only GET and add mint new sessions.
func (h *CartHandler) requireSession(c *gin.Context) (string, bool) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Session ID is required",
		})
		return "", false
	}
	return sessionID, true
}
