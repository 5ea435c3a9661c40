package user

import (
	"context"
	"database/sql"
	"strings"

	"go-metallurg/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindAll(ctx context.Context, filter ListFilter) ([]User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindSubordinates(ctx context.Context, masterID uuid.UUID) ([]User, error)
	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
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

func (r *repository) withRelations(ctx context.Context) *gorm.DB {
	return r.conn(ctx).Preload("Department").Preload("Master")
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.conn(ctx).Omit("Department", "Master").Create(u).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]User, error) {
	q := r.withRelations(ctx)

	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if s := strings.TrimSpace(strings.ToLower(filter.Query)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like, like)
	}

	var users []User
	err := q.Order("last_name ASC, first_name ASC").Find(&users).Error
	return users, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.withRelations(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := r.withRelations(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindSubordinates(ctx context.Context, masterID uuid.UUID) ([]User, error) {
	var users []User
	err := r.withRelations(ctx).
		Where("master_id = ?", masterID).
		Order("last_name ASC, first_name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.conn(ctx).
		Model(&User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"first_name":    u.FirstName,
			"last_name":     u.LastName,
			"role":          u.Role,
			"phone":         u.Phone,
			"department_id": u.DepartmentID,
			"master_id":     u.MasterID,
		}).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res := r.conn(ctx).Model(&User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
