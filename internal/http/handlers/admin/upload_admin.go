package admin

import (
	"github.com/tokogitar/tokogitar/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AdminUpload stores one image for the catalog.
func (h *Handler) AdminUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "berkas tidak ditemukan", err)
		return
	}
	scene := c.DefaultPostForm("scene", "product")
	path, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), err)
		return
	}
	response.Success(c, gin.H{"path": path})
}
