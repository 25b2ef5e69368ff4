package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform API envelope.
type Response struct {
	StatusCode int         `json:"status_code"` // business status code
	Msg        string      `json:"msg"`         // human readable message
	Data       interface{} `json:"data"`        // payload
}

// PageResponse is the envelope for paginated lists.
type PageResponse struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination carries list paging info.
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// Success writes a success envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: 0,
		Msg:        "success",
		Data:       data,
	})
}

// SuccessWithMsg writes a success envelope with a custom message.
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: 0,
		Msg:        msg,
		Data:       data,
	})
}

// SuccessWithPage writes a paginated success envelope.
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		StatusCode: 0,
		Msg:        "success",
		Data:       data,
		Pagination: pagination,
	})
}

// Error writes an error envelope.
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(http.StatusOK, Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       attachRequestID(c, nil),
	})
}

// ErrorWithData writes an error envelope with a payload.
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       attachRequestID(c, data),
	})
}

// NotFound writes a 404 envelope.
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized writes a 401 envelope.
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden writes a 403 envelope.
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// BadRequest writes a 400 envelope.
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func attachRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := ""
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok {
				requestID = id
			}
		}
	}
	if requestID == "" {
		return data
	}
	if data == nil {
		return gin.H{"request_id": requestID}
	}
	switch v := data.(type) {
	case gin.H:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	case map[string]interface{}:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	default:
		return gin.H{
			"request_id": requestID,
			"data":       data,
		}
	}
}
