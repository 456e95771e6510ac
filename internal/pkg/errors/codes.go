package errors

import "net/http"

const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeNotFound       = "NOT_FOUND"
	CodeServerError    = "SERVER_ERROR"
)

var (
	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrRouteNotFound = New(
		CodeNotFound,
		"Route not found",
		http.StatusNotFound,
	)

	ErrInternalServer = New(
		CodeServerError,
		"Internal server error",
		http.StatusInternalServerError,
	)
)

func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func InvalidRequest(message string) *AppError {
	return New(CodeInvalidRequest, message, http.StatusBadRequest)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

// Validation builds the 400 returned when input fails schema checks.
func Validation(details []FieldError) *AppError {
	return New(CodeInvalidRequest, "Validation failed", http.StatusBadRequest).WithDetails(details)
}
