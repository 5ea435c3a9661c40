package assignment

import "github.com/google/uuid"

type CreateAssignmentRequest struct {
	OperatorID       string  `json:"operatorId" binding:"required,uuid"`
	ShiftDate        string  `json:"shiftDate" binding:"required"`
	ShiftType        string  `json:"shiftType" binding:"required,oneof=day night"`
	TaskDescription  string  `json:"taskDescription"`
	MachineNumber    string  `json:"machineNumber" binding:"required,max=50"`
	PlannedQuantity  int     `json:"plannedQuantity" binding:"required,gt=0"`
	TechCardID       *string `json:"techCardId" binding:"omitempty,uuid"`
	ProductionPlanID *string `json:"productionPlanId" binding:"omitempty,uuid"`
	Notes            string  `json:"notes"`
}

type UpdateAssignmentRequest struct {
	OperatorID       *string `json:"operatorId" binding:"omitempty,uuid"`
	ShiftDate        *string `json:"shiftDate"`
	ShiftType        *string `json:"shiftType" binding:"omitempty,oneof=day night"`
	TaskDescription  *string `json:"taskDescription"`
	MachineNumber    *string `json:"machineNumber" binding:"omitempty,max=50"`
	PlannedQuantity  *int    `json:"plannedQuantity" binding:"omitempty,gt=0"`
	ActualQuantity   *int    `json:"actualQuantity" binding:"omitempty,gte=0"`
	TechCardID       *string `json:"techCardId"`
	ProductionPlanID *string `json:"productionPlanId"`
	Status           *string `json:"status" binding:"omitempty,oneof=assigned in_progress completed quality_check"`
	Notes            *string `json:"notes"`
}

type CompleteRequest struct {
	ActualQuantity *int   `json:"actualQuantity" binding:"required,gte=0"`
	Notes          string `json:"notes"`
}

type ListFilter struct {
	ShiftDate        string
	ShiftType        string
	OperatorID       string
	Status           string
	TechCardID       string
	ProductionPlanID string
}

// Actor is the caller of a state change. Employees may only move their own
// assignments.
type Actor struct {
	ID   uuid.UUID
	Role string
}

type AssignmentResponse struct {
	ID                  string  `json:"id"`
	OperatorID          string  `json:"operatorId"`
	OperatorName        string  `json:"operatorName,omitempty"`
	OperatorUsername    string  `json:"operatorUsername,omitempty"`
	ShiftDate           string  `json:"shiftDate"`
	ShiftType           string  `json:"shiftType"`
	TaskDescription     string  `json:"taskDescription"`
	MachineNumber       string  `json:"machineNumber"`
	PlannedQuantity     int     `json:"plannedQuantity"`
	ActualQuantity      *int    `json:"actualQuantity"`
	ProgressPercent     int     `json:"progressPercent"`
	TechCardID          *string `json:"techCardId"`
	TechCardProduct     string  `json:"techCardProduct,omitempty"`
	ProductionPlanID    *string `json:"productionPlanId"`
	ProductionPlanOrder string  `json:"productionPlanOrder,omitempty"`
	Status              string  `json:"status"`
	StartedAt           *string `json:"startedAt"`
	CompletedAt         *string `json:"completedAt"`
	Notes               string  `json:"notes"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// ImportRow is one data row of an uploaded sheet. Row counts data rows from 1;
// the header is not counted.
type ImportRow struct {
	Row             int
	Customer        string
	OrderName       string
	ShiftDate       string
	ShiftType       string
	OperatorLogin   string
	PlannedQuantity string
	MachineNumber   string
}

type ImportSummary struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Errors  int `json:"errors"`
	Skipped int `json:"skipped"`
}

type ImportSuccess struct {
	Row          int    `json:"row"`
	Operator     string `json:"operator"`
	Machine      string `json:"machine"`
	AssignmentID string `json:"assignmentId"`
}

type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportSkip struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportDetails struct {
	Success []ImportSuccess `json:"success"`
	Errors  []ImportError   `json:"errors"`
	Skipped []ImportSkip    `json:"skipped"`
}

type ImportResult struct {
	Summary ImportSummary `json:"summary"`
	Details ImportDetails `json:"details"`
}
