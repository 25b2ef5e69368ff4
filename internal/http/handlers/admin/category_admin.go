package admin

import (
	"github.com/tokogitar/tokogitar/internal/http/response"
	"github.com/tokogitar/tokogitar/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListCategories lists all categories.
func (h *Handler) AdminListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "kategori tidak dapat dimuat", err)
		return
	}
	response.Success(c, categories)
}

// AdminCreateCategory creates a category.
func (h *Handler) AdminCreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	category, err := h.CategoryService.CreateCategory(input)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "kategori gagal dibuat")
		return
	}
	response.Success(c, category)
}

// AdminUpdateCategory updates a category.
func (h *Handler) AdminUpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	category, err := h.CategoryService.UpdateCategory(id, input)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "kategori gagal diubah")
		return
	}
	response.Success(c, category)
}

// AdminDeleteCategory removes a category that has no products.
func (h *Handler) AdminDeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CategoryService.DeleteCategory(id); err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "kategori gagal dihapus")
		return
	}
	response.SuccessWithMsg(c, "kategori dihapus", nil)
}
