package user

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-metallurg/internal/shared/contextutil"
	usererrors "go-metallurg/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, filter ListFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	GetSubordinates(ctx context.Context, id string) ([]UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, id, newPassword string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, usererrors.ErrInvalidUserID
	}
	return parsed, nil
}

// parseOptionalID treats nil and "" as "no link".
func parseOptionalID(raw *string, invalid error) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, invalid
	}
	return &id, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	userID, err := parseID(id)
	if err != nil {
		return UserResponse{}, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return MapToResponse(*u), nil
}

func (s *service) GetSubordinates(ctx context.Context, id string) ([]UserResponse, error) {
	masterID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, masterID); err != nil {
		return nil, mapRepositoryError(err)
	}

	users, err := s.repo.FindSubordinates(ctx, masterID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	deptID, err := parseOptionalID(req.DepartmentID, usererrors.ErrInvalidDepartment)
	if err != nil {
		return UserResponse{}, err
	}
	masterID, err := parseOptionalID(req.MasterID, usererrors.ErrInvalidMaster)
	if err != nil {
		return UserResponse{}, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}

	u := &User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         role,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		DepartmentID: deptID,
		MasterID:     masterID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if masterID != nil {
		if _, err := qtx.FindByID(ctx, *masterID); err != nil {
			return UserResponse{}, usererrors.ErrInvalidMaster
		}
	}

	if err := qtx.Create(ctx, u); err != nil {
		l.Warn("failed to create user", zap.String("username", u.Username), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	created, err := qtx.FindByID(ctx, u.ID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	l.Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return MapToResponse(*created), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	userID, err := parseID(id)
	if err != nil {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.DepartmentID != nil {
		if u.DepartmentID, err = parseOptionalID(req.DepartmentID, usererrors.ErrInvalidDepartment); err != nil {
			return UserResponse{}, err
		}
	}
	if req.MasterID != nil {
		masterID, err := parseOptionalID(req.MasterID, usererrors.ErrInvalidMaster)
		if err != nil {
			return UserResponse{}, err
		}
		if masterID != nil {
			if *masterID == u.ID {
				return UserResponse{}, usererrors.ErrInvalidMaster
			}
			if _, err := qtx.FindByID(ctx, *masterID); err != nil {
				return UserResponse{}, usererrors.ErrInvalidMaster
			}
		}
		u.MasterID = masterID
	}

	if err := qtx.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	updated, err := qtx.FindByID(ctx, u.ID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	return MapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("user deleted", zap.String("user_id", id))
	return nil
}

func (s *service) ResetPassword(ctx context.Context, id, newPassword string) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("user password reset", zap.String("user_id", id))
	return nil
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func MapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:           u.ID.String(),
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		FullName:     u.FullName(),
		Role:         u.Role,
		Phone:        u.Phone,
		DepartmentID: uuidPtrString(u.DepartmentID),
		MasterID:     uuidPtrString(u.MasterID),
	}
	if u.Department != nil {
		resp.DepartmentName = u.Department.Name
	}
	if u.Master != nil {
		resp.MasterName = strings.TrimSpace(u.Master.FirstName + " " + u.Master.LastName)
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	if !u.UpdatedAt.IsZero() {
		resp.UpdatedAt = u.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = MapToResponse(u)
	}
	return res
}
