package events

import "time"

const (
	AssignmentCompletedTopic = "shopfloor.assignment.completed.v1"
	AssignmentCompletedType  = "assignment.completed"
)

// AssignmentCompletedEvent is emitted once per assignment when its shift
// output is booked. TechCardID and ProductionPlanID are empty when the
// assignment is not linked.
type AssignmentCompletedEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	AssignmentID     string    `json:"assignment_id"`
	OperatorID       string    `json:"operator_id"`
	TechCardID       string    `json:"tech_card_id,omitempty"`
	ProductionPlanID string    `json:"production_plan_id,omitempty"`
	ActualQuantity   int       `json:"actual_quantity"`
	ShiftDate        string    `json:"shift_date"`
	OccurredAt       time.Time `json:"occurred_at"`
}
