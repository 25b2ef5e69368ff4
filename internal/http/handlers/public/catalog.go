package public

import (
	"strconv"
	"strings"

	"github.com/tokogitar/tokogitar/internal/http/handlers/shared"
	"github.com/tokogitar/tokogitar/internal/http/response"
	"github.com/tokogitar/tokogitar/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetCategories lists categories for storefront navigation.
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "kategori tidak dapat dimuat", err)
		return
	}
	response.Success(c, categories)
}

// GetProducts lists active products.
func (h *Handler) GetProducts(c *gin.Context) {
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

	products, total, err := h.ProductService.ListPublic(filter)
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

// GetProduct returns one product detail page by slug.
func (h *Handler) GetProduct(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "produk tidak dapat dimuat")
		return
	}
	response.Success(c, product)
}
