package admin

import (
	"strconv"
	"strings"

	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/http/handlers/shared"
	"github.com/tokogitar/tokogitar/internal/http/response"
	"github.com/tokogitar/tokogitar/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminListOrders lists orders for the back office.
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			userID = uint(parsed)
		}
	}

	orders, total, err := h.OrderService.ListOrdersAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "daftar pesanan tidak dapat dimuat", err)
		return
	}
	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

// AdminGetOrder returns one order with lines, shipment and payment.
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderAdmin(id)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "pesanan tidak dapat dimuat")
		return
	}
	response.Success(c, order)
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus handles back office status changes. Only
// cancellation is driven from here; paid and shipped transitions come
// from the payment webhook and label issuance.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != constants.OrderStatusDibatalkan {
		respondError(c, response.CodeBadRequest, "status pesanan tidak mengizinkan aksi ini", nil)
		return
	}
	order, err := h.OrderService.CancelOrder(id)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "status pesanan gagal diubah")
		return
	}
	requestLog(c).Infow("admin_order_canceled", "order_id", id, "order_no", order.OrderNo)
	response.Success(c, order)
}
