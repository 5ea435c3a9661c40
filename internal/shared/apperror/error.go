package apperror

import "fmt"

// AppError is a failure the API reports to the client: a stable code, the
// message shown on the shop floor and the status the handler answers with.
// Err keeps the cause for logs and non-production details.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on code and message, so a sentinel still matches after WithErr
// has attached a cause to a copy of it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithErr returns a copy of e carrying err as its cause. Package-level
// sentinels are shared, so they are never mutated.
func (e *AppError) WithErr(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// New builds an error without a cause. A zero status falls back to the
// default for code.
func New(code, message string, httpStatus int) *AppError {
	if httpStatus == 0 {
		httpStatus = StatusFor(code)
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}
