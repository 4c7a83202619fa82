package util

import (
	"errors"
	"lms_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint answers with. Error carries either
// a single error name or a list of validation messages.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Error      interface{} `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
	})
}

func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{
		StatusCode: http.StatusCreated,
		Message:    message,
		Data:       data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		StatusCode: code,
		Message:    message,
		Error:      http.StatusText(code),
	})
}

// ValidationError reports binding failures as a list of messages.
func ValidationError(c *gin.Context, messages ...string) {
	c.JSON(http.StatusBadRequest, Response{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation failed",
		Error:      messages,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleServiceError maps domain sentinel errors onto the HTTP envelope.
// Anything unrecognized is logged and surfaced as a generic 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUnauthorized):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrAccountSuspended) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrOldPasswordIncorrect) ||
		errors.Is(err, ErrNoActiveCollab) ||
		errors.Is(err, ErrAdminSelfDelete):
		Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrModuleNotFound) ||
		errors.Is(err, ErrCollaborationNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailRegistered) || errors.Is(err, ErrCollaborationExists):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrSelfCollaboration) ||
		errors.Is(err, ErrSamePassword) ||
		errors.Is(err, ErrNoFieldsToUpdate) ||
		errors.Is(err, ErrAdminSelfSuspend) ||
		errors.Is(err, ErrPDFFileRequired) ||
		errors.Is(err, ErrInvalidContent) ||
		errors.Is(err, ErrInvalidOrder):
		Error(c, http.StatusBadRequest, err.Error())
	default:
		LogInternalError(c, err)
	}
}
