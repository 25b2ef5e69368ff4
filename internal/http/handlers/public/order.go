package public

import (
	"strconv"

	"github.com/tokogitar/tokogitar/internal/http/handlers/shared"
	"github.com/tokogitar/tokogitar/internal/http/response"
	"github.com/tokogitar/tokogitar/internal/repository"
	"github.com/tokogitar/tokogitar/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrder checks out the current cart.
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	order, err := h.OrderService.Checkout(userID, input)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "pembuatan pesanan gagal")
		return
	}
	response.Success(c, order)
}

// GetOrders lists the signed-in user's orders.
func (h *Handler) GetOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersForUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   c.Query("status"),
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

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "order id tidak valid", err)
		return 0, false
	}
	return uint(id), true
}

// GetOrder returns one of the user's orders with lines and shipment.
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderForUser(orderID, userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "pesanan tidak dapat dimuat")
		return
	}
	response.Success(c, order)
}

// ConfirmOrderDelivery closes a DIKIRIM order as SELESAI.
func (h *Handler) ConfirmOrderDelivery(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.ConfirmDelivery(orderID, userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "konfirmasi penerimaan gagal")
		return
	}
	response.Success(c, order)
}
