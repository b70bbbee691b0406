package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	apperrors "github.com/xyz-asif/duetodo/pkg/errors"
)

// RequestIDKey is the gin context key holding the current request id.
const RequestIDKey = "requestID"

// ErrorResponse represents the standard error payload returned by the API
type ErrorResponse struct {
	StatusCode int    `json:"statusCode" example:"404"`
	Error      string `json:"error" example:"Not Found"`
	Message    string `json:"message" example:"Todo 507f1f77bcf86cd799439011 not found"`
	Code       string `json:"code,omitempty" example:"NOT_FOUND"`
	Timestamp  string `json:"timestamp" example:"2025-01-01T00:00:00Z"`
	Path       string `json:"path" example:"/todos/507f1f77bcf86cd799439011"`
	Method     string `json:"method" example:"GET"`
	RequestID  string `json:"requestId,omitempty" example:"5b0c7a4e-3f0e-4c1d-9d55-0f3f1f0c2a11"`
}

// Success sends a 200 OK response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	writeError(c, statusCode, message, nil, errorCode...)
}

func writeError(c *gin.Context, statusCode int, message string, cause error, errorCode ...string) {
	code := ""
	if len(errorCode) > 0 {
		code = errorCode[0]
	}

	path := c.Request.URL.Path
	method := c.Request.Method
	requestID := c.GetString(RequestIDKey)

	l := zerolog.Ctx(c.Request.Context())
	var event *zerolog.Event
	if statusCode >= http.StatusInternalServerError {
		event = l.Error().Err(cause)
	} else {
		event = l.Warn()
	}
	event.Str("method", method).
		Str("path", path).
		Int("status", statusCode).
		Str("code", code).
		Msg(message)

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		StatusCode: statusCode,
		Error:      http.StatusText(statusCode),
		Message:    message,
		Code:       code,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Path:       path,
		Method:     method,
		RequestID:  requestID,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusNotFound, message, errorCode...)
}

// TooManyRequests sends a 429 Too Many Requests error
func TooManyRequests(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusTooManyRequests, message, errorCode...)
}

// BindJSONError handles JSON decode errors in request body. Binding tag
// failures are reported as validation errors.
func BindJSONError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ValidationFailed(c, fieldMessage(verrs[0]))
		return
	}
	writeError(c, http.StatusBadRequest, "Invalid request format", err, "INVALID_JSON")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if field != "" {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	if fe.Tag() == "required" {
		return field + " is required"
	}
	return fmt.Sprintf("%s failed the %q rule", field, fe.Tag())
}

// ValidationFailed handles validation errors
func ValidationFailed(c *gin.Context, message string) {
	BadRequest(c, message, "VALIDATION_FAILED")
}

// FromError maps an application error to its HTTP status. Anything that is
// not NotFound or InvalidArgument is reported as a 500 without details.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		writeError(c, http.StatusNotFound, apperrors.Message(err), err, "NOT_FOUND")
	case errors.Is(err, apperrors.ErrInvalidArgument):
		writeError(c, http.StatusBadRequest, apperrors.Message(err), err, "INVALID_ARGUMENT")
	default:
		writeError(c, http.StatusInternalServerError, "Internal server error", err, "INTERNAL")
	}
}
