package public

import (
	handlershared "github.com/tokogitar/tokogitar/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "user id tidak valid", "tipe user id tidak valid")
}
