package assignmenterrors

import (
	"go-metallurg/internal/shared/apperror"
	"net/http"
)

var (
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Assignment not found",
		http.StatusNotFound,
	)
	ErrInvalidAssignmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid assignment ID",
		http.StatusBadRequest,
	)
	ErrInvalidShiftDate = apperror.New(
		apperror.CodeValidation,
		"Shift date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidReference = apperror.New(
		apperror.CodeValidation,
		"Operator, tech card or production plan does not exist",
		http.StatusBadRequest,
	)
	ErrNotOwnAssignment = apperror.New(
		apperror.CodeForbidden,
		"Assignment belongs to another operator",
		http.StatusForbidden,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Assignment cannot change to this status from its current one",
		http.StatusConflict,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeValidation,
		"Spreadsheet file is required",
		http.StatusBadRequest,
	)
	ErrUnsupportedFile = apperror.New(
		apperror.CodeValidation,
		"Only .xlsx files are allowed",
		http.StatusBadRequest,
	)
	ErrLegacySpreadsheet = apperror.New(
		apperror.CodeValidation,
		"Legacy .xls files are not supported, save it as .xlsx",
		http.StatusBadRequest,
	)
	ErrUnreadableFile = apperror.New(
		apperror.CodeValidation,
		"Spreadsheet could not be read, save it as .xlsx",
		http.StatusBadRequest,
	)
	ErrEmptyFile = apperror.New(
		apperror.CodeValidation,
		"Spreadsheet has no data rows",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodePayloadTooLarge,
		"File exceeds the upload size limit",
		http.StatusRequestEntityTooLarge,
	)
)
