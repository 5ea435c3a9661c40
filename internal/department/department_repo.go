package department

import (
	"context"
	"database/sql"

	"go-metallurg/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindMembers(ctx context.Context, id uuid.UUID) ([]Member, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.conn(ctx).Order("name ASC").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Department, error) {
	var dept Department
	if err := r.conn(ctx).First(&dept, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&Department{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindMembers(ctx context.Context, id uuid.UUID) ([]Member, error) {
	var members []Member
	err := r.conn(ctx).
		Where("department_id = ?", id).
		Order("last_name ASC, first_name ASC").
		Find(&members).Error
	return members, err
}
