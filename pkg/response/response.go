package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nkroberts01/virtual-interviews/internal/apperror"
)

// Envelope wraps all API responses in a consistent structure
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details for failed responses
type ErrorInfo struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// OK sends a successful response with data
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
	})
}

// Created sends a 201 response for successfully created resources
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    data,
	})
}

// Message sends a success response with just a message
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    gin.H{"message": message},
	})
}

// Error sends the response for a classified failure. Status and message come
// from the error taxonomy; wrapped internals are never exposed.
func Error(c *gin.Context, err error) {
	errorResponse(c, apperror.Status(err), codeFor(err), apperror.Message(err))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Unauthorized sends a 401 response. A non-empty redirect tells the client
// where to send the user to sign in.
func Unauthorized(c *gin.Context, message, redirect string) {
	if message == "" {
		message = "unauthorized"
	}
	c.JSON(http.StatusUnauthorized, Envelope{
		Success: false,
		Error: &ErrorInfo{
			Code:     "UNAUTHORIZED",
			Message:  message,
			Redirect: redirect,
		},
	})
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "resource not found"
	}
	errorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

// InternalError sends a 500 response without internal detail
func InternalError(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "something went wrong")
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

func codeFor(err error) string {
	switch apperror.KindOf(err) {
	case apperror.Unauthenticated:
		return "UNAUTHORIZED"
	case apperror.Validation:
		return "BAD_REQUEST"
	case apperror.NotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}
