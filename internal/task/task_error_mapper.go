package task

import (
	"errors"

	"go-metallurg/internal/shared/dbtx"
	taskerrors "go-metallurg/internal/task/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskerrors.ErrTaskNotFound
	}
	if dbtx.IsForeignKeyViolation(err) {
		return taskerrors.ErrInvalidAssignee
	}

	return err
}
