package taskerrors

import (
	"go-metallurg/internal/shared/apperror"
	"net/http"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid task ID",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"Due date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidAssignee = apperror.New(
		apperror.CodeInvalidInput,
		"Assigned user or department does not exist",
		http.StatusBadRequest,
	)
)
