package departmenterrors

import (
	"go-metallurg/internal/shared/apperror"
	"net/http"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrDepartmentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Department with the same name already exists",
		http.StatusConflict,
	)
	ErrDepartmentInUse = apperror.New(
		apperror.CodeConflict,
		"Department still has users assigned",
		http.StatusConflict,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
)
