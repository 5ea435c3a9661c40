package techcard

import (
	"context"
	"database/sql"
	"strings"

	"go-metallurg/internal/shared/counter"
	"go-metallurg/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const priorityOrder = "CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"

//go:generate mockgen -source=techcard_repo.go -destination=mock/techcard_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, card *TechCard) error
	FindAll(ctx context.Context, filter ListFilter) ([]TechCard, error)
	FindByID(ctx context.Context, id uuid.UUID) (*TechCard, error)
	FindByCustomerOrder(ctx context.Context, customer, order string) (*TechCard, error)
	Update(ctx context.Context, card *TechCard) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddProduced(ctx context.Context, id uuid.UUID, delta int) error

	CreateExecution(ctx context.Context, e *Execution) error
	FindExecutions(ctx context.Context, techCardIDs ...uuid.UUID) ([]Execution, error)

	CreateAccess(ctx context.Context, a *Access) error
	FindAccesses(ctx context.Context, techCardID uuid.UUID) ([]Access, error)
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

func (r *repository) Create(ctx context.Context, card *TechCard) error {
	return r.conn(ctx).Omit("CreatedBy").Create(card).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]TechCard, error) {
	q := r.conn(ctx).Preload("CreatedBy")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if s := strings.ToLower(strings.TrimSpace(filter.Query)); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"LOWER(customer) LIKE ? OR LOWER(order_name) LIKE ? OR LOWER(product_name) LIKE ? OR LOWER(part_number) LIKE ?",
			like, like, like, like,
		)
	}

	var cards []TechCard
	err := q.
		Order(priorityOrder).
		Order("planned_end_date IS NULL").
		Order("planned_end_date ASC").
		Order("created_at DESC").
		Find(&cards).Error
	return cards, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*TechCard, error) {
	var card TechCard
	if err := r.conn(ctx).Preload("CreatedBy").First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByCustomerOrder returns the newest card for a customer and order name,
// compared case-insensitively.
func (r *repository) FindByCustomerOrder(ctx context.Context, customer, order string) (*TechCard, error) {
	var card TechCard
	err := r.conn(ctx).
		Where("LOWER(customer) = ? AND LOWER(order_name) = ?",
			strings.ToLower(strings.TrimSpace(customer)),
			strings.ToLower(strings.TrimSpace(order)),
		).
		Order("created_at DESC").
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Update writes the editable columns only. total_produced_quantity is owned by
// AddProduced.
func (r *repository) Update(ctx context.Context, card *TechCard) error {
	return r.conn(ctx).Model(&TechCard{ID: card.ID}).
		Select(
			"Customer", "Order", "ProductName", "PartNumber", "Quantity",
			"PdfURL", "PdfFileSize", "Status", "Priority",
			"PlannedEndDate", "ActualEndDate", "Notes", "UpdatedAt",
		).
		Updates(card).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&TechCard{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) AddProduced(ctx context.Context, id uuid.UUID, delta int) error {
	return counter.Add(r.conn(ctx), &TechCard{}, "total_produced_quantity", id, delta)
}

func (r *repository) CreateExecution(ctx context.Context, e *Execution) error {
	return r.conn(ctx).Omit("TechCard", "ExecutedBy").Create(e).Error
}

// FindExecutions lists executions of the given cards, newest first.
func (r *repository) FindExecutions(ctx context.Context, techCardIDs ...uuid.UUID) ([]Execution, error) {
	if len(techCardIDs) == 0 {
		return nil, nil
	}

	var executions []Execution
	err := r.conn(ctx).
		Preload("ExecutedBy").
		Where("tech_card_id IN ?", techCardIDs).
		Order("executed_at DESC").
		Find(&executions).Error
	return executions, err
}

func (r *repository) CreateAccess(ctx context.Context, a *Access) error {
	return r.conn(ctx).Omit("TechCard", "User").Create(a).Error
}

func (r *repository) FindAccesses(ctx context.Context, techCardID uuid.UUID) ([]Access, error) {
	var accesses []Access
	err := r.conn(ctx).
		Preload("User").
		Where("tech_card_id = ?", techCardID).
		Order("accessed_at DESC").
		Find(&accesses).Error
	return accesses, err
}
