package techcard

import (
	"io"

	"github.com/google/uuid"
)

type CreateTechCardRequest struct {
	Customer       string  `json:"customer" binding:"required,max=255"`
	Order          string  `json:"order" binding:"required,max=255"`
	ProductName    string  `json:"productName" binding:"required,max=255"`
	PartNumber     *string `json:"partNumber" binding:"omitempty,max=100"`
	Quantity       int     `json:"quantity" binding:"required,gt=0"`
	Status         string  `json:"status" binding:"omitempty,oneof=draft active archived"`
	Priority       string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	PlannedEndDate string  `json:"plannedEndDate"`
	Notes          string  `json:"notes"`
}

// UpdateTechCardRequest touches only the fields that are sent. An empty
// plannedEndDate or actualEndDate clears the date.
type UpdateTechCardRequest struct {
	Customer       *string `json:"customer" binding:"omitempty,max=255"`
	Order          *string `json:"order" binding:"omitempty,max=255"`
	ProductName    *string `json:"productName" binding:"omitempty,max=255"`
	PartNumber     *string `json:"partNumber" binding:"omitempty,max=100"`
	Quantity       *int    `json:"quantity" binding:"omitempty,gt=0"`
	Status         *string `json:"status" binding:"omitempty,oneof=draft active archived"`
	Priority       *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	PlannedEndDate *string `json:"plannedEndDate"`
	ActualEndDate  *string `json:"actualEndDate"`
	Notes          *string `json:"notes"`
}

type ListFilter struct {
	Status   string
	Priority string
	Query    string
}

type CreateExecutionRequest struct {
	QuantityProduced int    `json:"quantityProduced" binding:"required,gt=0"`
	SetupNumber      string `json:"setupNumber" binding:"max=50"`
}

type CreateAccessRequest struct {
	Action string `json:"action" binding:"required,oneof=view work"`
}

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AssignmentExecution is the production recorded when a shift assignment is
// completed.
type AssignmentExecution struct {
	TechCardID   uuid.UUID
	OperatorID   uuid.UUID
	AssignmentID uuid.UUID
	Quantity     int
}

type TechCardResponse struct {
	ID                    string  `json:"id"`
	Customer              string  `json:"customer"`
	Order                 string  `json:"order"`
	ProductName           string  `json:"productName"`
	PartNumber            *string `json:"partNumber"`
	Quantity              int     `json:"quantity"`
	PdfURL                string  `json:"pdfUrl"`
	PdfFileSize           int64   `json:"pdfFileSize"`
	PdfFileSizeFormatted  string  `json:"pdfFileSizeFormatted,omitempty"`
	TotalProducedQuantity int     `json:"totalProducedQuantity"`
	Status                string  `json:"status"`
	Priority              string  `json:"priority"`
	PlannedEndDate        *string `json:"plannedEndDate"`
	ActualEndDate         *string `json:"actualEndDate"`
	Notes                 string  `json:"notes"`
	CreatedByID           *string `json:"createdById"`
	CreatedByName         string  `json:"createdByName,omitempty"`

	ProgressPercent      int     `json:"progressPercent"`
	IsOverdue            bool    `json:"isOverdue"`
	DaysToDeadline       *int    `json:"daysToDeadline"`
	UniqueOperatorsCount int     `json:"uniqueOperatorsCount"`
	LastActivity         *string `json:"lastActivity"`
	ExecutionsCount      int     `json:"executionsCount"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ExecutionResponse struct {
	ID               string  `json:"id"`
	TechCardID       string  `json:"techCardId"`
	ExecutedByID     string  `json:"executedById"`
	ExecutedByName   string  `json:"executedByName,omitempty"`
	QuantityProduced int     `json:"quantityProduced"`
	SetupNumber      string  `json:"setupNumber"`
	AssignmentID     *string `json:"assignmentId"`
	ExecutedAt       string  `json:"executedAt"`
}

type RecordExecutionResponse struct {
	Execution ExecutionResponse `json:"execution"`
	TechCard  TechCardResponse  `json:"techCard"`
}

type AccessResponse struct {
	ID         string `json:"id"`
	TechCardID string `json:"techCardId"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName,omitempty"`
	Action     string `json:"action"`
	AccessedAt string `json:"accessedAt"`
}

type StatsResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	Overdue  int            `json:"overdue"`
}
