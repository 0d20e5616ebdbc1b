package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vegist/backend/internal/domain"
	"github.com/vegist/backend/internal/usecase"
)

type addCartItemRequest struct {
	ProductID string                   `json:"productId" binding:"required"`
	Quantity  int                      `json:"quantity" binding:"omitempty,min=1"`
	Delivery  string                   `json:"delivery" binding:"omitempty,oneof=home store"`
	StoreID   string                   `json:"storeId"`
	Selection *domain.VariantSelection `json:"selection"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type addWishlistItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// cartResponse is a cart with its computed totals
type cartResponse struct {
	*domain.Cart
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"itemCount"`
}

func newCartResponse(cart *domain.Cart) cartResponse {
	return cartResponse{Cart: cart, Subtotal: cart.Subtotal(), ItemCount: cart.ItemCount()}
}

// GetCart handles GET /api/v1/carts/:session
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.carts.GetCart(c.Request.Context(), c.Param("session"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

// AddCartItem handles POST /api/v1/carts/:session/items.
// Quantity defaults to 1 and delivery to home.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.carts.AddItem(c.Request.Context(), c.Param("session"), usecase.AddItemRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Delivery:  domain.DeliveryOption(req.Delivery),
		StoreID:   req.StoreID,
		Selection: req.Selection,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCartResponse(cart))
}

// UpdateCartItem handles PATCH /api/v1/carts/:session/items/:itemId.
// A quantity of zero removes the line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	cart, err := h.carts.UpdateQuantity(c.Request.Context(), c.Param("session"), c.Param("itemId"), *req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

// RemoveCartItem handles DELETE /api/v1/carts/:session/items/:itemId
func (h *Handler) RemoveCartItem(c *gin.Context) {
	cart, err := h.carts.RemoveItem(c.Request.Context(), c.Param("session"), c.Param("itemId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

// ClearCart handles DELETE /api/v1/carts/:session
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.carts.ClearCart(c.Request.Context(), c.Param("session")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetWishlist handles GET /api/v1/wishlists/:session
func (h *Handler) GetWishlist(c *gin.Context) {
	wishlist, err := h.carts.GetWishlist(c.Request.Context(), c.Param("session"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

// AddWishlistItem handles POST /api/v1/wishlists/:session/items
func (h *Handler) AddWishlistItem(c *gin.Context) {
	var req addWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			abortWithError(c, http.StatusBadRequest, "invalid_request", "request body is required")
			return
		}
		abortWithError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	wishlist, err := h.carts.AddToWishlist(c.Request.Context(), c.Param("session"), req.ProductID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

// RemoveWishlistItem handles DELETE /api/v1/wishlists/:session/items/:productId
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	wishlist, err := h.carts.RemoveFromWishlist(c.Request.Context(), c.Param("session"), c.Param("productId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

// ClearWishlist handles DELETE /api/v1/wishlists/:session
func (h *Handler) ClearWishlist(c *gin.Context) {
	if err := h.carts.ClearWishlist(c.Request.Context(), c.Param("session")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
