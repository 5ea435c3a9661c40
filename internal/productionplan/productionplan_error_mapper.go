package productionplan

import (
	"errors"

	productionplanerrors "go-metallurg/internal/productionplan/errors"
	"go-metallurg/internal/shared/dbtx"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return productionplanerrors.ErrPlanNotFound
	}
	if dbtx.IsForeignKeyViolation(err) {
		return productionplanerrors.ErrInvalidTechCard
	}

	return err
}
