package public

import (
	"strconv"

	"github.com/tokogitar/tokogitar/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCart returns the signed-in user's cart.
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.GetCart(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "keranjang tidak dapat dimuat", err)
		return
	}
	response.Success(c, view)
}

type cartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpsertCartItem sets the quantity of one product in the cart.
func (h *Handler) UpsertCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	view, err := h.CartService.UpsertItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "keranjang tidak dapat diubah")
		return
	}
	response.Success(c, view)
}

// RemoveCartItem drops one product from the cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "product id tidak valid", err)
		return
	}
	view, err := h.CartService.RemoveItem(userID, uint(productID))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "keranjang tidak dapat diubah")
		return
	}
	response.Success(c, view)
}
