package user

import (
	"errors"

	"go-metallurg/internal/shared/dbtx"
	usererrors "go-metallurg/internal/user/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	if dbtx.IsDuplicateKey(err, "username") {
		return usererrors.ErrUsernameTaken
	}
	if dbtx.IsForeignKeyViolation(err) {
		return usererrors.ErrInvalidDepartment
	}

	return err
}
