package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Code      ErrCode           `json:"error"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Details   string            `json:"details,omitempty"`
	RequestID string            `json:"request_id"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends data as the JSON body with the given status code.
// Resources are returned bare, without an envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Fail sends an error response with the default message for code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, build(c, code, GetMessage(code)))
}

// FailWithMessage sends an error response with a custom message.
func FailWithMessage(c *gin.Context, statusCode int, code ErrCode, message string) {
	c.JSON(statusCode, build(c, code, message))
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	body := build(c, code, GetMessage(code))
	body.Fields = fields
	c.JSON(statusCode, body)
}

// FailWithDetails sends an error response carrying the underlying failure text.
func FailWithDetails(c *gin.Context, statusCode int, code ErrCode, details string) {
	body := build(c, code, GetMessage(code))
	body.Details = details
	c.JSON(statusCode, body)
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, build(c, code, GetMessage(code)))
}

// AbortFailWithMessage aborts the middleware chain with a custom message.
func AbortFailWithMessage(c *gin.Context, statusCode int, code ErrCode, message string) {
	c.AbortWithStatusJSON(statusCode, build(c, code, message))
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func build(c *gin.Context, code ErrCode, message string) ErrorBody {
	return ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: fallbackRequestID(c),
	}
}

func fallbackRequestID(c *gin.Context) string {
	if id := RequestID(c); id != "" {
		return id
	}
	return uuid.New().String()
}
