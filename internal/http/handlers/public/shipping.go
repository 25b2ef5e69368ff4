package public

import (
	"strings"

	"github.com/tokogitar/tokogitar/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetShippingRates quotes courier options for the current cart.
func (h *Handler) GetShippingRates(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	destinationAreaID := strings.TrimSpace(c.Query("destination_area_id"))
	rates, err := h.ShippingService.GetRates(c.Request.Context(), userID, destinationAreaID)
	if err != nil {
		respondWithMappedError(c, err, shippingRateErrorRules, response.CodeInternal, "tarif pengiriman tidak dapat dimuat")
		return
	}
	response.Success(c, rates)
}
