package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	departmenterrors "go-metallurg/internal/department/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DepartmentAllKey = "departments:all"
	cacheTTL         = 30 * time.Minute
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
	GetMembers(ctx context.Context, id string) ([]MemberResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, departmenterrors.ErrInvalidDepartmentID
	}
	return parsed, nil
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, DepartmentAllKey).Result()
		if err == nil {
			var resp []DepartmentResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DepartmentAllKey, func() (interface{}, error) {
		depts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(depts)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, DepartmentAllKey, data, cacheTTL).Err(); err != nil {
					s.logger.Warn("failed to cache departments", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	deptID, err := parseID(id)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	deptID, err := parseID(id)
	if err != nil {
		return DepartmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.Name = strings.TrimSpace(req.Name)
	dept.Description = req.Description

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deptID, err := parseID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, deptID); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) GetMembers(ctx context.Context, id string) ([]MemberResponse, error) {
	deptID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, deptID); err != nil {
		return nil, mapRepositoryError(err)
	}

	members, err := s.repo.FindMembers(ctx, deptID)
	if err != nil {
		return nil, err
	}

	resp := make([]MemberResponse, len(members))
	for i, m := range members {
		resp[i] = mapMemberToResponse(m)
	}
	return resp, nil
}

// invalidate runs after commit so readers never cache a rolled back write.
func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DepartmentAllKey).Err(); err != nil {
		s.logger.Error("failed to invalidate cache",
			zap.String("key", DepartmentAllKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(d Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: d.Description,
	}
	if !d.CreatedAt.IsZero() {
		resp.CreatedAt = d.CreatedAt.Format(time.RFC3339)
	}
	if !d.UpdatedAt.IsZero() {
		resp.UpdatedAt = d.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}

func mapMemberToResponse(m Member) MemberResponse {
	resp := MemberResponse{
		ID:        m.ID.String(),
		Username:  m.Username,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		FullName:  strings.TrimSpace(m.FirstName + " " + m.LastName),
		Role:      m.Role,
		Phone:     m.Phone,
	}
	if m.MasterID != nil {
		id := m.MasterID.String()
		resp.MasterID = &id
	}
	return resp
}
