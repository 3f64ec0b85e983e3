package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bluepin/backend/internal/domain"
)

// addWishlistRequest is the body of POST /wishlist
type addWishlistRequest struct {
	ProductIdentifier string `json:"productIdentifier" binding:"required"`
}

// ListWishlist returns the caller's wishlist
func (h *Handler) ListWishlist(c *gin.Context) {
	items, err := h.wishlist.List(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// AddToWishlist saves a product to the caller's wishlist
func (h *Handler) AddToWishlist(c *gin.Context) {
	var req addWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	item, err := h.wishlist.Add(c.Request.Context(), c.GetString(userIDKey), req.ProductIdentifier)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// RemoveFromWishlist deletes one item from the caller's wishlist
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: item id must be an integer", domain.ErrInvalidRequest))
		return
	}

	if err := h.wishlist.Remove(c.Request.Context(), c.GetString(userIDKey), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearWishlist deletes every item from the caller's wishlist
func (h *Handler) ClearWishlist(c *gin.Context) {
	removed, err := h.wishlist.Clear(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
