package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrConflict = New(
		CodeConflict,
		"Resource already exists",
		http.StatusConflict,
	)
)

// RequiredField builds the validation error for a missing field.
func RequiredField(field string) *AppError {
	return New(
		CodeValidation,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
	)
}

// InvalidField builds the validation error for a malformed field.
func InvalidField(field string) *AppError {
	return New(
		CodeValidation,
		fmt.Sprintf("%s is invalid", field),
		http.StatusBadRequest,
	)
}

// TooManyRequests builds the 429 answered by the rate limiters.
func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequests, message, 0)
}
