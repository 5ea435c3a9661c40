package productionplanerrors

import (
	"go-metallurg/internal/shared/apperror"
	"net/http"
)

var (
	ErrPlanNotFound = apperror.New(
		apperror.CodeNotFound,
		"Production plan not found",
		http.StatusNotFound,
	)
	ErrInvalidPlanID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid production plan ID",
		http.StatusBadRequest,
	)
	ErrInvalidDeadline = apperror.New(
		apperror.CodeValidation,
		"Deadline must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTechCard = apperror.New(
		apperror.CodeValidation,
		"Linked tech card does not exist",
		http.StatusBadRequest,
	)
)
