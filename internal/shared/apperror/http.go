package apperror

import (
	"errors"
	"os"
)

// HTTPError is the wire shape of an error inside the response envelope.
type HTTPError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ToHTTP maps any error to an HTTPError. Errors that are not AppErrors become
// a generic 500; the raw message is only exposed outside production.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: ErrInternal.HTTPStatus, Code: ErrInternal.Code, Message: ErrInternal.Message}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		out := HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
		if appErr.Err != nil && !isProduction() {
			out.Details = appErr.Err.Error()
		}
		return out
	}

	out := HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
	if !isProduction() {
		out.Details = err.Error()
	}
	return out
}

func isProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}
