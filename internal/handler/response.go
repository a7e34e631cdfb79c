package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nirban/hms-api/pkg/errors"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) Response {
	return Response{Status: "success", Data: data}
}

func NewMessageResponse(message string) Response {
	return Response{Status: "success", Message: message}
}

func NewErrorResponse(message string) Response {
	return Response{Status: "error", Message: message}
}

// RespondError maps service errors to HTTP responses. Unknown errors
// are masked as a generic 500.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}

// RespondOK writes a 200 success envelope.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

// RespondCreated writes a 201 success envelope.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, NewSuccessResponse(data))
}
