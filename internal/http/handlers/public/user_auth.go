package public

import (
	"github.com/tokogitar/tokogitar/internal/http/response"
	"github.com/tokogitar/tokogitar/internal/service"

	"github.com/gin-gonic/gin"
)

// Register creates a storefront account.
func (h *Handler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	user, err := h.AuthService.Register(input)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "registrasi gagal")
		return
	}
	token, expiresAt, err := h.AuthService.GenerateJWT(user)
	if err != nil {
		respondError(c, response.CodeInternal, "registrasi gagal", err)
		return
	}
	response.Success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an account and hands out a token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "login gagal")
		return
	}
	response.Success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// GetProfile returns the signed-in account.
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AuthService.GetUserByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "profil tidak dapat dimuat", err)
		return
	}
	if user == nil {
		response.Unauthorized(c, "sesi tidak valid")
		return
	}
	response.Success(c, user)
}

type resetRequestPayload struct {
	Email string `json:"email" binding:"required"`
}

// RequestResetCode emails a password reset OTP.
func (h *Handler) RequestResetCode(c *gin.Context) {
	var req resetRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	if err := h.ResetService.RequestCode(req.Email); err != nil {
		respondWithMappedError(c, err, resetErrorRules, response.CodeInternal, "pengiriman kode OTP gagal")
		return
	}
	response.SuccessWithMsg(c, "kode OTP telah dikirim", nil)
}

type resetVerifyPayload struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// VerifyResetCode checks an OTP without consuming it.
func (h *Handler) VerifyResetCode(c *gin.Context) {
	var req resetVerifyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	if err := h.ResetService.VerifyCode(req.Email, req.Code); err != nil {
		respondWithMappedError(c, err, resetErrorRules, response.CodeInternal, "verifikasi kode OTP gagal")
		return
	}
	response.SuccessWithMsg(c, "kode OTP valid", nil)
}

type resetPasswordPayload struct {
	Email           string `json:"email" binding:"required"`
	Code            string `json:"code" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ResetPassword consumes an OTP and sets the new password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "parameter tidak valid", err)
		return
	}
	if err := h.ResetService.ResetPassword(req.Email, req.Code, req.NewPassword, req.ConfirmPassword); err != nil {
		respondWithMappedError(c, err, resetErrorRules, response.CodeInternal, "reset password gagal")
		return
	}
	response.SuccessWithMsg(c, "password berhasil diubah", nil)
}
