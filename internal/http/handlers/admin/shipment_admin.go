package admin

import (
	"github.com/tokogitar/tokogitar/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AdminIssueLabel books the courier pickup for a packed order and
// records the resi.
func (h *Handler) AdminIssueLabel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	shipment, err := h.ShipmentService.IssueLabel(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, labelErrorRules, response.CodeInternal, "penerbitan resi gagal")
		return
	}
	response.Success(c, shipment)
}

// AdminGetLabel returns the printable label data for a shipped order.
func (h *Handler) AdminGetLabel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	label, err := h.ShipmentService.GetLabel(id)
	if err != nil {
		respondWithMappedError(c, err, labelErrorRules, response.CodeInternal, "label tidak dapat dimuat")
		return
	}
	response.Success(c, label)
}
