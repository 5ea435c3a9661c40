package productionplan

import (
	"time"

	"go-metallurg/internal/progress"
	"go-metallurg/internal/techcard"

	"github.com/google/uuid"
)

const (
	StatusPlanned    = progress.PlanPlanned
	StatusInProgress = progress.PlanInProgress
	StatusCompleted  = progress.PlanCompleted
	StatusCancelled  = progress.PlanCancelled

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ProductionPlan is an order-level target. ProgressPercent and Status are
// derived from CompletedQuantity and rewritten on every save.
type ProductionPlan struct {
	ID                uuid.UUID  `gorm:"type:char(36);primaryKey"`
	CustomerName      string     `gorm:"size:255;not null;index:idx_production_plans_customer_order"`
	OrderName         string     `gorm:"size:255;not null;index:idx_production_plans_customer_order"`
	Quantity          int        `gorm:"not null"`
	CompletedQuantity int        `gorm:"not null;default:0"`
	ProgressPercent   int        `gorm:"not null;default:0"`
	Deadline          *time.Time `gorm:"type:date"`
	Status            string     `gorm:"size:16;not null;default:planned;index"`
	TechCardID        *uuid.UUID `gorm:"type:char(36);index"`
	Priority          string     `gorm:"size:16;not null;default:medium"`
	Notes             string     `gorm:"type:text"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime"`

	TechCard *techcard.TechCard `gorm:"foreignKey:TechCardID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (ProductionPlan) TableName() string {
	return "production_plans"
}
