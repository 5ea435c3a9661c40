package techcarderrors

import (
	"go-metallurg/internal/shared/apperror"
	"net/http"
)

var (
	ErrTechCardNotFound = apperror.New(
		apperror.CodeNotFound,
		"Tech card not found",
		http.StatusNotFound,
	)
	ErrInvalidTechCardID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid tech card ID",
		http.StatusBadRequest,
	)
	ErrPartNumberTaken = apperror.New(
		apperror.CodeConflict,
		"A tech card with this part number already exists",
		http.StatusConflict,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeValidation,
		"Dates must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeValidation,
		"PDF file is required",
		http.StatusBadRequest,
	)
	ErrNotPDF = apperror.New(
		apperror.CodeValidation,
		"Only PDF files are allowed",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodePayloadTooLarge,
		"File exceeds the upload size limit",
		http.StatusRequestEntityTooLarge,
	)
	ErrNoPDF = apperror.New(
		apperror.CodeNotFound,
		"Tech card has no attached PDF",
		http.StatusNotFound,
	)
	ErrExecutionAlreadyRecorded = apperror.New(
		apperror.CodeConflict,
		"Production for this assignment is already recorded",
		http.StatusConflict,
	)
)
