package task

import (
	"time"

	"go-metallurg/internal/department"
	"go-metallurg/internal/techcard"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Task struct {
	ID                   uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Title                string     `gorm:"size:255;not null"`
	Description          string     `gorm:"type:text"`
	Status               string     `gorm:"size:16;not null;default:pending;index"`
	Priority             string     `gorm:"size:16;not null;default:medium"`
	AssignedDepartmentID *uuid.UUID `gorm:"type:char(36);index"`
	AssignedUserID       *uuid.UUID `gorm:"type:char(36);index"`
	DueDate              *time.Time `gorm:"type:date"`
	CompletedAt          *time.Time `gorm:"column:completed_at"`
	CreatedByID          uuid.UUID  `gorm:"type:char(36);not null"`
	CreatedAt            time.Time  `gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime"`

	AssignedDepartment *department.Department `gorm:"foreignKey:AssignedDepartmentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	AssignedUser       *techcard.Person       `gorm:"foreignKey:AssignedUserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedBy          *techcard.Person       `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Task) TableName() string {
	return "tasks"
}
