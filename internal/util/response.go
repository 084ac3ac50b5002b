package util

import (
	"errors"
	"net/http"

	"cbt_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the error body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Detail writes an error body with an explicit status.
func Detail(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Detail: message})
}

func BadRequest(c *gin.Context, message string) {
	Detail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	Detail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Detail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Detail(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Detail(c, http.StatusInternalServerError, "Internal server error")
}

// LogInternalError logs the unexpected error and answers with a generic 500.
// Internals never reach the client.
func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// WriteError translates a service error into its HTTP response. Unknown
// errors are treated as internal.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrExamTypeNotFound),
		errors.Is(err, ErrSubjectNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrTestNotFound),
		errors.Is(err, ErrAttemptNotFound),
		errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrNewsNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenExpired):
		Unauthorized(c, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c, err.Error())
	case errors.Is(err, ErrAttemptCompleted),
		errors.Is(err, ErrAttemptNotCompleted),
		errors.Is(err, ErrInactiveUser),
		errors.Is(err, ErrUserExists),
		errors.Is(err, ErrExamTypeExists),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrInvalidFileType):
		BadRequest(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
