package admin

import (
	"errors"
	"strconv"
	"time"

	handlershared "github.com/tokogitar/tokogitar/internal/http/handlers/shared"
	"github.com/tokogitar/tokogitar/internal/http/response"
	"github.com/tokogitar/tokogitar/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

func getActorID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "user id tidak valid", "tipe user id tidak valid")
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "id tidak valid", err)
		return 0, false
	}
	return uint(id), true
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("format waktu tidak valid: " + raw)
}

// mappedHandlerError binds a business error to its response code.
type mappedHandlerError struct {
	target error
	code   int
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.target.Error(), nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound},
	{target: service.ErrCategoryInUse, code: response.CodeBadRequest},
	{target: service.ErrProductNotFound, code: response.CodeNotFound},
	{target: service.ErrSlugTaken, code: response.CodeBadRequest},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest},
}

var userAdminErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound},
	{target: service.ErrEmailTaken, code: response.CodeBadRequest},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest},
	{target: service.ErrRoleInvalid, code: response.CodeBadRequest},
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest},
}

var labelErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest},
	{target: service.ErrShipmentNotFound, code: response.CodeNotFound},
	{target: service.ErrResiAlreadyIssued, code: response.CodeBadRequest},
	{target: service.ErrDestinationIncomplete, code: response.CodeBadRequest},
	{target: service.ErrWarehouseNotConfigured, code: response.CodeInternal},
	{target: service.ErrLabelIssueFailed, code: response.CodeInternal},
}
