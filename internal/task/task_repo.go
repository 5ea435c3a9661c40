package task

import (
	"context"
	"database/sql"

	"go-metallurg/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Task) error
	FindAll(ctx context.Context, filter ListFilter) ([]Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) preload(q *gorm.DB) *gorm.DB {
	return q.Preload("AssignedDepartment").Preload("AssignedUser").Preload("CreatedBy")
}

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.conn(ctx).Omit("AssignedDepartment", "AssignedUser", "CreatedBy").Create(t).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Task, error) {
	q := r.preload(r.conn(ctx))

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.AssignedUserID != "" {
		q = q.Where("assigned_user_id = ?", filter.AssignedUserID)
	}
	if filter.AssignedDepartmentID != "" {
		q = q.Where("assigned_department_id = ?", filter.AssignedDepartmentID)
	}

	var tasks []Task
	err := q.
		Order("due_date IS NULL").
		Order("due_date ASC").
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var t Task
	if err := r.preload(r.conn(ctx)).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	return r.conn(ctx).Model(&Task{ID: t.ID}).
		Select(
			"Title", "Description", "Status", "Priority", "AssignedDepartmentID",
			"AssignedUserID", "DueDate", "CompletedAt", "UpdatedAt",
		).
		Updates(t).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
