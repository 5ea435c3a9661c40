package department

import (
	"errors"

	departmenterrors "go-metallurg/internal/department/errors"
	"go-metallurg/internal/shared/dbtx"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	if dbtx.IsDuplicateKey(err, "uq_departments_name") {
		return departmenterrors.ErrDepartmentAlreadyExists
	}
	if dbtx.IsForeignKeyViolation(err) {
		return departmenterrors.ErrDepartmentInUse
	}

	return err
}
