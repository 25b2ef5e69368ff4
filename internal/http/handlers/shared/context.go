package shared

import (
	"github.com/tokogitar/tokogitar/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUintWithKeys reads a uint value off the request context and
// writes the matching error envelope when it is missing or malformed.
func GetContextUintWithKeys(c *gin.Context, key, invalidMsg, typeInvalidMsg string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "sesi tidak valid", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidMsg, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidMsg, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidMsg, nil)
		return 0, false
	}
}

// GetContextString reads a string value off the request context.
func GetContextString(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}
