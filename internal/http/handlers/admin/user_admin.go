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

// AdminListUsers lists accounts.
func (h *Handler) AdminListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := h.UserAdminService.ListUsers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Role:     strings.TrimSpace(c.Query("role")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "pengguna tidak dapat dimuat", err)
		return
	}
	response.SuccessWithPage(c, users, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

// AdminGetUser returns one account.
func (h *Handler) AdminGetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.UserAdminService.GetUser(id)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "pengguna tidak dapat dimuat")
		return
	}
	response.Success(c, user)
}

// AdminCreateUser creates an account with an explicit role.
func (h *Handler) AdminCreateUser(c *gin.Context) {
	var input service.UserCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	user, err := h.UserAdminService.CreateUser(input)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "pengguna gagal dibuat")
		return
	}
	response.Success(c, user)
}

// AdminUpdateUser edits an account.
func (h *Handler) AdminUpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input service.UserUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	user, err := h.UserAdminService.UpdateUser(id, input)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "pengguna gagal diubah")
		return
	}
	response.Success(c, user)
}

// AdminDeleteUser soft deletes an account.
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	actorID, ok := getActorID(c)
	if !ok {
		return
	}
	if err := h.UserAdminService.DeleteUser(id, actorID); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "pengguna gagal dihapus")
		return
	}
	response.SuccessWithMsg(c, "pengguna dihapus", nil)
}
