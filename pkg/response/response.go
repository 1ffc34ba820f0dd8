package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the uniform API response envelope
type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Success writes a 200 response with the given message and payload
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail writes a 400 response with the given message and error detail
func Fail(c *gin.Context, message string, err interface{}) {
	FailWithStatus(c, http.StatusBadRequest, message, err)
}

// FailWithStatus writes a response with an explicit HTTP status code
func FailWithStatus(c *gin.Context, status int, message string, err interface{}) {
	if e, ok := err.(error); ok {
		err = e.Error()
	}
	c.JSON(status, Body{
		Code:    status,
		Message: message,
		Error:   err,
	})
}
