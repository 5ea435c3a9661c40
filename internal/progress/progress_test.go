package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 100))
	assert.Equal(t, 100, Percent(100, 100))
	assert.Equal(t, 0, Percent(50, 0))
	assert.Equal(t, 70, Percent(70, 100))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 150, Percent(150, 100))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -30)
	future := now.AddDate(0, 0, 3)

	t.Run("active past deadline", func(t *testing.T) {
		assert.True(t, IsOverdue(Deadline{PlannedEnd: &past, Status: StatusActive}, now))
	})

	t.Run("finished never overdue", func(t *testing.T) {
		done := now.AddDate(0, 0, -1)
		assert.False(t, IsOverdue(Deadline{PlannedEnd: &past, ActualEnd: &done, Status: StatusActive}, now))
	})

	t.Run("not active", func(t *testing.T) {
		assert.False(t, IsOverdue(Deadline{PlannedEnd: &past, Status: "draft"}, now))
	})

	t.Run("future deadline", func(t *testing.T) {
		assert.False(t, IsOverdue(Deadline{PlannedEnd: &future, Status: StatusActive}, now))
	})

	t.Run("no deadline", func(t *testing.T) {
		assert.False(t, IsOverdue(Deadline{Status: StatusActive}, now))
	})
}

func TestDaysToDeadline(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("future rounds up", func(t *testing.T) {
		end := now.Add(36 * time.Hour)
		days := DaysToDeadline(Deadline{PlannedEnd: &end}, now)
		if assert.NotNil(t, days) {
			assert.Equal(t, 2, *days)
		}
	})

	t.Run("day after deadline is negative", func(t *testing.T) {
		end := now.Add(-25 * time.Hour)
		days := DaysToDeadline(Deadline{PlannedEnd: &end, Status: StatusActive}, now)
		if assert.NotNil(t, days) {
			assert.Equal(t, -1, *days)
		}
	})

	t.Run("nil once finished", func(t *testing.T) {
		end := now.Add(-25 * time.Hour)
		assert.Nil(t, DaysToDeadline(Deadline{PlannedEnd: &end, ActualEnd: &now}, now))
	})

	t.Run("nil without deadline", func(t *testing.T) {
		assert.Nil(t, DaysToDeadline(Deadline{}, now))
	})
}

func TestUniqueOperatorsCountAndLastActivity(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	t1 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)
	t3 := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)

	execs := []Execution{
		{ExecutedBy: a, ExecutedAt: t1},
		{ExecutedBy: b, ExecutedAt: t2},
		{ExecutedBy: a, ExecutedAt: t3},
	}

	assert.Equal(t, 2, UniqueOperatorsCount(execs))
	assert.Equal(t, 0, UniqueOperatorsCount(nil))

	last := LastActivity(execs)
	if assert.NotNil(t, last) {
		assert.True(t, last.Equal(t2))
	}
	assert.Nil(t, LastActivity(nil))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0.0 B", FormatFileSize(0))
	assert.Equal(t, "500.0 B", FormatFileSize(500))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "2.0 MB", FormatFileSize(2*1024*1024))
	assert.Equal(t, "3.0 GB", FormatFileSize(3*1024*1024*1024))
	assert.Equal(t, "2048.0 GB", FormatFileSize(2*1024*1024*1024*1024))
}

func TestPlanStatus(t *testing.T) {
	assert.Equal(t, PlanPlanned, PlanStatus(PlanPlanned, 0))
	assert.Equal(t, PlanInProgress, PlanStatus(PlanPlanned, 40))
	assert.Equal(t, PlanCompleted, PlanStatus(PlanInProgress, 100))
	assert.Equal(t, PlanCompleted, PlanStatus(PlanInProgress, 120))
	assert.Equal(t, PlanCancelled, PlanStatus(PlanCancelled, 100))
}
