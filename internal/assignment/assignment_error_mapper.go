package assignment

import (
	"errors"

	assignmenterrors "go-metallurg/internal/assignment/errors"
	"go-metallurg/internal/shared/dbtx"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return assignmenterrors.ErrAssignmentNotFound
	case errors.Is(err, ErrStatusChanged):
		return assignmenterrors.ErrInvalidTransition
	case dbtx.IsForeignKeyViolation(err):
		return assignmenterrors.ErrInvalidReference
	}

	return err
}
