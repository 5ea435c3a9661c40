package productionplan

import (
	"context"
	"database/sql"
	"strings"

	"go-metallurg/internal/shared/counter"
	"go-metallurg/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=productionplan_repo.go -destination=mock/productionplan_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, plan *ProductionPlan) error
	FindAll(ctx context.Context, filter ListFilter) ([]ProductionPlan, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionPlan, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ProductionPlan, error)
	FindByCustomerOrder(ctx context.Context, customer, order string) (*ProductionPlan, error)
	Update(ctx context.Context, plan *ProductionPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddCompleted(ctx context.Context, id uuid.UUID, delta int) error
	SaveProgress(ctx context.Context, id uuid.UUID, percent int, status string) error
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

func (r *repository) Create(ctx context.Context, plan *ProductionPlan) error {
	return r.conn(ctx).Omit("TechCard").Create(plan).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]ProductionPlan, error) {
	q := r.conn(ctx).Preload("TechCard")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.TechCardID != "" {
		q = q.Where("tech_card_id = ?", filter.TechCardID)
	}
	if s := strings.ToLower(strings.TrimSpace(filter.Query)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(customer_name) LIKE ? OR LOWER(order_name) LIKE ?", like, like)
	}

	var plans []ProductionPlan
	err := q.
		Order("deadline IS NULL").
		Order("deadline ASC").
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*ProductionPlan, error) {
	var plan ProductionPlan
	if err := r.conn(ctx).Preload("TechCard").First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindByIDForUpdate reads the latest committed row and holds its lock until
// the surrounding transaction ends. Relations are not loaded.
func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ProductionPlan, error) {
	var plan ProductionPlan
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&plan, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindByCustomerOrder returns the newest plan for a customer and order name,
// compared case-insensitively.
func (r *repository) FindByCustomerOrder(ctx context.Context, customer, order string) (*ProductionPlan, error) {
	var plan ProductionPlan
	err := r.conn(ctx).
		Where("LOWER(customer_name) = ? AND LOWER(order_name) = ?",
			strings.ToLower(strings.TrimSpace(customer)),
			strings.ToLower(strings.TrimSpace(order)),
		).
		Order("created_at DESC").
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update writes the editable and derived columns. completed_quantity is owned
// by AddCompleted.
func (r *repository) Update(ctx context.Context, plan *ProductionPlan) error {
	return r.conn(ctx).Model(&ProductionPlan{ID: plan.ID}).
		Select(
			"CustomerName", "OrderName", "Quantity", "ProgressPercent",
			"Deadline", "Status", "TechCardID", "Priority", "Notes", "UpdatedAt",
		).
		Updates(plan).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&ProductionPlan{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) AddCompleted(ctx context.Context, id uuid.UUID, delta int) error {
	return counter.Add(r.conn(ctx), &ProductionPlan{}, "completed_quantity", id, delta)
}

func (r *repository) SaveProgress(ctx context.Context, id uuid.UUID, percent int, status string) error {
	return r.conn(ctx).Model(&ProductionPlan{}).
		Where("id = ?", id).
		Updates(map[string]any{"progress_percent": percent, "status": status}).Error
}
