package admin

import (
	"strconv"
	"strings"

	"github.com/tokogitar/tokogitar/internal/http/handlers/shared"
	"github.com/tokogitar/tokogitar/internal/http/response"
	"github.com/tokogitar/tokogitar/internal/repository"
	"github.com/tokogitar/tokogitar/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListProducts lists catalog items, inactive included.
func (h *Handler) AdminListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}

	products, total, err := h.ProductService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "produk tidak dapat dimuat", err)
		return
	}
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

// AdminGetProduct returns one catalog item.
func (h *Handler) AdminGetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "produk tidak dapat dimuat")
		return
	}
	response.Success(c, product)
}

// AdminCreateProduct creates a catalog item.
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	product, err := h.ProductService.CreateProduct(input)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "produk gagal dibuat")
		return
	}
	response.Success(c, product)
}

// AdminUpdateProduct updates a catalog item.
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	product, err := h.ProductService.UpdateProduct(id, input)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "produk gagal diubah")
		return
	}
	response.Success(c, product)
}

// AdminDeleteProduct soft deletes a catalog item.
func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.DeleteProduct(id); err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "produk gagal dihapus")
		return
	}
	response.SuccessWithMsg(c, "produk dihapus", nil)
}
