package techcard

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusArchived = "archived"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	AccessView = "view"
	AccessWork = "work"
)

var Statuses = []string{StatusDraft, StatusActive, StatusArchived}

type TechCard struct {
	ID                    uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Customer              string     `gorm:"size:255;not null;index:idx_techcards_customer_order"`
	Order                 string     `gorm:"column:order_name;size:255;not null;index:idx_techcards_customer_order"`
	ProductName           string     `gorm:"size:255;not null"`
	PartNumber            *string    `gorm:"size:100;uniqueIndex:uq_techcards_part_number"`
	Quantity              int        `gorm:"not null"`
	PdfURL                string     `gorm:"column:pdf_url;size:500"`
	PdfFileSize           int64      `gorm:"column:pdf_file_size;not null;default:0"`
	TotalProducedQuantity int        `gorm:"not null;default:0"`
	Status                string     `gorm:"size:16;not null;default:draft;index"`
	Priority              string     `gorm:"size:16;not null;default:medium"`
	PlannedEndDate        *time.Time `gorm:"type:date"`
	ActualEndDate         *time.Time `gorm:"type:date"`
	Notes                 string     `gorm:"type:text"`
	CreatedByID           *uuid.UUID `gorm:"type:char(36);index"`
	CreatedAt             time.Time  `gorm:"autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime"`

	CreatedBy *Person `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (TechCard) TableName() string {
	return "techcards"
}

// Execution is one production event logged against a tech card. AssignmentID
// is set when the event came from a completed shift assignment and is unique,
// so a replayed completion cannot be counted twice.
type Execution struct {
	ID               uuid.UUID  `gorm:"type:char(36);primaryKey"`
	TechCardID       uuid.UUID  `gorm:"type:char(36);not null;index"`
	ExecutedByID     uuid.UUID  `gorm:"type:char(36);not null;index"`
	QuantityProduced int        `gorm:"not null"`
	SetupNumber      string     `gorm:"size:50"`
	AssignmentID     *uuid.UUID `gorm:"type:char(36);uniqueIndex:uq_techcard_executions_assignment"`
	ExecutedAt       time.Time  `gorm:"not null;index"`

	TechCard   *TechCard `gorm:"foreignKey:TechCardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ExecutedBy *Person   `gorm:"foreignKey:ExecutedByID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Execution) TableName() string {
	return "techcard_executions"
}

type Access struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	TechCardID uuid.UUID `gorm:"type:char(36);not null;index"`
	UserID     uuid.UUID `gorm:"type:char(36);not null;index"`
	Action     string    `gorm:"size:16;not null"`
	AccessedAt time.Time `gorm:"not null"`

	TechCard *TechCard `gorm:"foreignKey:TechCardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User     *Person   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Access) TableName() string {
	return "techcard_accesses"
}

// Person is the read-only view of a user shown next to cards and executions.
type Person struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username  string    `gorm:"size:100"`
	FirstName string    `gorm:"size:100"`
	LastName  string    `gorm:"size:100"`
}

func (Person) TableName() string {
	return "users"
}

func (p *Person) FullName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
