package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-metallurg/internal/auth/errors"
	"go-metallurg/internal/config"
	"go-metallurg/internal/shared/contextutil"
	"go-metallurg/internal/shared/dbtx"
	"go-metallurg/internal/shared/token"
	"go-metallurg/internal/user"
	usererrors "go-metallurg/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	Login(ctx context.Context, username, password string) (Tokens, user.UserResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (Tokens, user.UserResponse, error)
	GetMe(ctx context.Context, userID string) (user.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
}

type service struct {
	users  user.Repository
	jwt    config.JWTConfig
	logger *zap.Logger
}

func NewService(users user.Repository, jwtCfg config.JWTConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, jwt: jwtCfg, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	var deptID *uuid.UUID
	if req.DepartmentID != nil && strings.TrimSpace(*req.DepartmentID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*req.DepartmentID))
		if err != nil {
			return user.UserResponse{}, usererrors.ErrInvalidDepartment
		}
		deptID = &id
	}

	hash, err := user.HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         user.RoleEmployee,
		PasswordHash: hash,
		DepartmentID: deptID,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if dbtx.IsDuplicateKey(err, "username") {
			return user.UserResponse{}, autherrors.ErrUsernameTaken
		}
		if dbtx.IsForeignKeyViolation(err) {
			return user.UserResponse{}, usererrors.ErrInvalidDepartment
		}
		l.Error("failed to register user", zap.String("username", u.Username), zap.Error(err))
		return user.UserResponse{}, err
	}

	l.Info("user registered", zap.String("user_id", u.ID.String()))
	return user.MapToResponse(*u), nil
}

func (s *service) Login(ctx context.Context, username, password string) (Tokens, user.UserResponse, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return Tokens{}, user.UserResponse{}, err
		}
		return Tokens{}, user.UserResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Tokens{}, user.UserResponse{}, autherrors.ErrInvalidCredentials
	}

	tokens, err := s.issue(u)
	if err != nil {
		return Tokens{}, user.UserResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("user logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return tokens, user.MapToResponse(*u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (Tokens, user.UserResponse, error) {
	claims, err := token.Parse(s.jwt.Secret, refreshToken, token.TypeRefresh)
	if err != nil {
		return Tokens{}, user.UserResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Tokens{}, user.UserResponse{}, autherrors.ErrInvalidRefreshToken
	}

	// Role and department are reloaded so admin edits apply on the next refresh.
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return Tokens{}, user.UserResponse{}, autherrors.ErrInvalidRefreshToken
	}

	tokens, err := s.issue(u)
	if err != nil {
		return Tokens{}, user.UserResponse{}, err
	}
	return tokens, user.MapToResponse(*u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (user.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return user.UserResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		}
		return user.UserResponse{}, err
	}
	return user.MapToResponse(*u), nil
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	hash, err := user.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("password changed", zap.String("user_id", userID))
	return nil
}

func (s *service) issue(u *user.User) (Tokens, error) {
	claims := token.Claims{UserID: u.ID.String(), Role: u.Role}
	if u.DepartmentID != nil {
		claims.DepartmentID = u.DepartmentID.String()
	}

	claims.Type = token.TypeAccess
	access, err := token.Issue(s.jwt.Secret, claims, s.ttl(s.jwt.AccessTTL, 24*time.Hour))
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return Tokens{}, autherrors.ErrTokenGenerationFailed
	}

	claims.Type = token.TypeRefresh
	refresh, err := token.Issue(s.jwt.Secret, claims, s.ttl(s.jwt.RefreshTTL, 7*24*time.Hour))
	if err != nil {
		s.logger.Error("failed to sign refresh token", zap.Error(err))
		return Tokens{}, autherrors.ErrTokenGenerationFailed
	}

	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) ttl(configured, fallback time.Duration) time.Duration {
	if configured > 0 {
		return configured
	}
	return fallback
}
