package public

import (
	"github.com/tokogitar/tokogitar/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreatePaymentToken issues the hosted payment page token for a pending order.
func (h *Handler) CreatePaymentToken(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	result, err := h.PaymentService.IssueToken(c.Request.Context(), orderID, userID)
	if err != nil {
		respondWithMappedError(c, err, paymentTokenErrorRules, response.CodeInternal, "token pembayaran gagal dibuat")
		return
	}
	response.Success(c, result)
}
