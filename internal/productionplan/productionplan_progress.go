package productionplan

import (
	"context"

	"go-metallurg/internal/progress"

	"github.com/google/uuid"
)

// ApplyProgress adds delta completed units to the plan and rewrites its
// derived progress and status. repo must be bound to the caller's transaction:
// the increment and the locked re-read keep the row locked until commit, so
// the derived fields always match completed_quantity.
func ApplyProgress(ctx context.Context, repo Repository, id uuid.UUID, delta int) (*ProductionPlan, error) {
	if err := repo.AddCompleted(ctx, id, delta); err != nil {
		return nil, mapRepositoryError(err)
	}

	plan, err := repo.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	derive(plan)
	if err := repo.SaveProgress(ctx, plan.ID, plan.ProgressPercent, plan.Status); err != nil {
		return nil, err
	}
	return plan, nil
}

func derive(plan *ProductionPlan) {
	plan.ProgressPercent = progress.Percent(plan.CompletedQuantity, plan.Quantity)
	plan.Status = progress.PlanStatus(plan.Status, plan.ProgressPercent)
}
