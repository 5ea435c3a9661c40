package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:uq_departments_name"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// Member is the read-only projection of a user shown on the department portal.
type Member struct {
	ID           uuid.UUID  `gorm:"column:id"`
	Username     string     `gorm:"column:username"`
	FirstName    string     `gorm:"column:first_name"`
	LastName     string     `gorm:"column:last_name"`
	Role         string     `gorm:"column:role"`
	Phone        string     `gorm:"column:phone"`
	DepartmentID *uuid.UUID `gorm:"column:department_id"`
	MasterID     *uuid.UUID `gorm:"column:master_id"`
}

func (Member) TableName() string {
	return "users"
}
