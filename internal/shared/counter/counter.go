package counter

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Add increments column by delta on the row with the given id in a single
// UPDATE, so concurrent writers never lose an increment. model selects the
// table, e.g. &TechCard{}. A missing row yields gorm.ErrRecordNotFound.
func Add(db *gorm.DB, model any, column string, id uuid.UUID, delta int) error {
	res := db.Model(model).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(fmt.Sprintf("%s + ?", column), delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
