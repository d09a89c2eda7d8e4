package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorBody carries the machine-readable error kind next to the human
// message so clients can branch without string matching
type ErrorBody struct {
	Kind    string      `json:"kind"`
	Details interface{} `json:"details,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion

	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: idStr,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, kind string, details interface{}) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	var body *ErrorBody
	if kind != "" || details != nil {
		body = &ErrorBody{Kind: kind, Details: details}
	}

	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     body,
		RequestID: idStr,
	})
}
