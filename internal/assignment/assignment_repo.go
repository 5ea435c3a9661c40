package assignment

import (
	"context"
	"database/sql"
	"errors"

	"go-metallurg/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrStatusChanged is returned by Transition when the row is no longer in one
// of the expected statuses.
var ErrStatusChanged = errors.New("assignment status changed")

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Assignment) error
	FindAll(ctx context.Context, filter ListFilter) ([]Assignment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Assignment, error)
	Update(ctx context.Context, a *Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Transition(ctx context.Context, id uuid.UUID, from []string, changes map[string]any) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Operator").Preload("TechCard").Preload("ProductionPlan")
}

func (r *repository) Create(ctx context.Context, a *Assignment) error {
	return r.conn(ctx).Omit("Operator", "TechCard", "ProductionPlan").Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Assignment, error) {
	q := r.withRelations(r.conn(ctx))

	if filter.ShiftDate != "" {
		q = q.Where("shift_date = ?", filter.ShiftDate)
	}
	if filter.ShiftType != "" {
		q = q.Where("shift_type = ?", filter.ShiftType)
	}
	if filter.OperatorID != "" {
		q = q.Where("operator_id = ?", filter.OperatorID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.TechCardID != "" {
		q = q.Where("tech_card_id = ?", filter.TechCardID)
	}
	if filter.ProductionPlanID != "" {
		q = q.Where("production_plan_id = ?", filter.ProductionPlanID)
	}

	var assignments []Assignment
	err := q.
		Order("shift_date DESC").
		Order("shift_type ASC").
		Order("machine_number ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Assignment, error) {
	var a Assignment
	if err := r.withRelations(r.conn(ctx)).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Update(ctx context.Context, a *Assignment) error {
	return r.conn(ctx).Model(&Assignment{ID: a.ID}).
		Select(
			"OperatorID", "ShiftDate", "ShiftType", "TaskDescription", "MachineNumber",
			"PlannedQuantity", "ActualQuantity", "TechCardID", "ProductionPlanID",
			"Status", "StartedAt", "CompletedAt", "Notes", "UpdatedAt",
		).
		Updates(a).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&Assignment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Transition applies changes only while the status is one of from, so two
// concurrent completions cannot both succeed.
func (r *repository) Transition(ctx context.Context, id uuid.UUID, from []string, changes map[string]any) error {
	res := r.conn(ctx).Model(&Assignment{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}
