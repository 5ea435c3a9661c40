package assignment

import (
	"time"

	"go-metallurg/internal/productionplan"
	"go-metallurg/internal/techcard"

	"github.com/google/uuid"
)

const (
	StatusAssigned     = "assigned"
	StatusInProgress   = "in_progress"
	StatusCompleted    = "completed"
	StatusQualityCheck = "quality_check"

	ShiftDay   = "day"
	ShiftNight = "night"
)

type Assignment struct {
	ID               uuid.UUID  `gorm:"type:char(36);primaryKey"`
	OperatorID       uuid.UUID  `gorm:"type:char(36);not null;index"`
	ShiftDate        time.Time  `gorm:"type:date;not null;index"`
	ShiftType        string     `gorm:"size:10;not null"`
	TaskDescription  string     `gorm:"type:text"`
	MachineNumber    string     `gorm:"size:50;not null"`
	PlannedQuantity  int        `gorm:"not null"`
	ActualQuantity   *int       `gorm:"column:actual_quantity"`
	TechCardID       *uuid.UUID `gorm:"type:char(36);index"`
	ProductionPlanID *uuid.UUID `gorm:"type:char(36);index"`
	Status           string     `gorm:"size:20;not null;default:assigned;index"`
	StartedAt        *time.Time `gorm:"column:started_at"`
	CompletedAt      *time.Time `gorm:"column:completed_at"`
	Notes            string     `gorm:"type:text"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime"`

	Operator       *techcard.Person               `gorm:"foreignKey:OperatorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	TechCard       *techcard.TechCard             `gorm:"foreignKey:TechCardID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	ProductionPlan *productionplan.ProductionPlan `gorm:"foreignKey:ProductionPlanID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Assignment) TableName() string {
	return "assignments"
}
