package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error codes returned to clients
const (
	CodeBindingError      = "BINDING_ERROR"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeMalformedLocation = "MALFORMED_LOCATION"
	CodeUnknownDirection  = "UNKNOWN_DIRECTION"
	CodeInvalidLocation   = "INVALID_LOCATION"
	CodeSearchTimeout     = "SEARCH_TIMEOUT"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeHTTPError         = "HTTP_ERROR"
)

// Response unified API response structure
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`    // HTTP status code
	Message string     `json:"message"` // User-friendly message
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`    // Business error code, e.g., "UNKNOWN_DIRECTION"
	Details string `json:"details"` // Detailed error description
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success: true,
		Code:    statusCode,
		Message: message,
		Data:    data,
	})
}

// Error error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

// BadRequest 400 error
func BadRequest(c echo.Context, errorCode string, message string, details string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, details)
}

// BindingError binding error response
func BindingError(c echo.Context, details string) error {
	return Error(c, http.StatusBadRequest, CodeBindingError, "Invalid request body", details)
}

// ValidationError validation error response
func ValidationError(c echo.Context, details string) error {
	return Error(c, http.StatusBadRequest, CodeValidationError, "Request validation failed", details)
}

// GatewayTimeout 504 error
func GatewayTimeout(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusGatewayTimeout, errorCode, message, "")
}

// InternalServerError 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}
