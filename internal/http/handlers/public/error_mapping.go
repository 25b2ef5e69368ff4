package public

import (
	"errors"

	"github.com/tokogitar/tokogitar/internal/http/response"
	"github.com/tokogitar/tokogitar/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds a business error to its response code. The
// envelope message is the sentinel's own text.
type mappedHandlerError struct {
	target error
	code   int
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			// The error's own text, not the sentinel's: dynamic errors
			// (cooldowns, policy reasons) carry specifics the sentinel lacks.
			respondError(c, rule.code, err.Error(), nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrEmailTaken, code: response.CodeBadRequest},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized},
}

var resetErrorRules = []mappedHandlerError{
	{target: service.ErrEmailNotRegistered, code: response.CodeNotFound},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest},
	{target: service.ErrResetCodeRateLimit, code: response.CodeTooManyRequests},
	{target: service.ErrResetCodeInvalid, code: response.CodeBadRequest},
	{target: service.ErrResetCodeExpired, code: response.CodeBadRequest},
	{target: service.ErrResetCodeConsumed, code: response.CodeBadRequest},
	{target: service.ErrPasswordMismatch, code: response.CodeBadRequest},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound},
	{target: service.ErrProductInactive, code: response.CodeBadRequest},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest},
	{target: service.ErrShippingRateInvalid, code: response.CodeBadRequest},
	{target: service.ErrDestinationIncomplete, code: response.CodeBadRequest},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest},
}

var paymentTokenErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest},
	{target: service.ErrPaymentTokenUnavailable, code: response.CodeInternal},
}

var shippingRateErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest},
	{target: service.ErrDestinationIncomplete, code: response.CodeBadRequest},
	{target: service.ErrWarehouseNotConfigured, code: response.CodeInternal},
	{target: service.ErrShippingRateInvalid, code: response.CodeBadRequest},
}
