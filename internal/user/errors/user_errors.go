package usererrors

import (
	"go-metallurg/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUsernameTaken = apperror.New(
		apperror.CodeConflict,
		"Username is already taken",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"Department does not exist",
		http.StatusBadRequest,
	)

	ErrInvalidMaster = apperror.New(
		apperror.CodeInvalidInput,
		"Master must be another existing user",
		http.StatusBadRequest,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)
)
