package techcard

import (
	"errors"

	"go-metallurg/internal/shared/dbtx"
	techcarderrors "go-metallurg/internal/techcard/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return techcarderrors.ErrTechCardNotFound
	}
	if dbtx.IsDuplicateKey(err, "uq_techcards_part_number") {
		return techcarderrors.ErrPartNumberTaken
	}

	return err
}
