// Package progress holds the derived-field calculators shared by tech cards,
// assignments and production plans. Every function is pure.
package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive = "active"

	PlanPlanned    = "planned"
	PlanInProgress = "in_progress"
	PlanCompleted  = "completed"
	PlanCancelled  = "cancelled"
)

// Percent returns produced/planned as a rounded percentage. Over-production is
// not clamped.
func Percent(produced, planned int) int {
	if planned == 0 {
		return 0
	}
	return int(math.Round(float64(produced) / float64(planned) * 100))
}

// Deadline is the subset of a tech card the deadline calculators look at.
type Deadline struct {
	PlannedEnd *time.Time
	ActualEnd  *time.Time
	Status     string
}

func IsOverdue(d Deadline, now time.Time) bool {
	if d.PlannedEnd == nil || d.ActualEnd != nil {
		return false
	}
	return d.Status == StatusActive && d.PlannedEnd.Before(now)
}

// DaysToDeadline is signed; negative means overdue. Nil when there is no
// deadline or the work is already finished.
func DaysToDeadline(d Deadline, now time.Time) *int {
	if d.PlannedEnd == nil || d.ActualEnd != nil {
		return nil
	}
	days := int(math.Ceil(d.PlannedEnd.Sub(now).Hours() / 24))
	return &days
}

type Execution struct {
	ExecutedBy uuid.UUID
	ExecutedAt time.Time
}

func UniqueOperatorsCount(executions []Execution) int {
	seen := make(map[uuid.UUID]struct{}, len(executions))
	for _, e := range executions {
		seen[e.ExecutedBy] = struct{}{}
	}
	return len(seen)
}

func LastActivity(executions []Execution) *time.Time {
	var last *time.Time
	for i := range executions {
		at := executions[i].ExecutedAt
		if last == nil || at.After(*last) {
			last = &at
		}
	}
	return last
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

func FormatFileSize(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}

// PlanStatus derives a production plan status from its progress. A cancelled
// plan stays cancelled.
func PlanStatus(current string, percent int) string {
	switch {
	case current == PlanCancelled:
		return PlanCancelled
	case percent >= 100:
		return PlanCompleted
	case percent > 0:
		return PlanInProgress
	default:
		return PlanPlanned
	}
}
