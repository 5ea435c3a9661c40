package task

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-metallurg/internal/progress"
	"go-metallurg/internal/shared/contextutil"
	"go-metallurg/internal/shared/dateutil"
	taskerrors "go-metallurg/internal/task/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, createdBy uuid.UUID, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]TaskResponse, error)
	GetByID(ctx context.Context, id string) (TaskResponse, error)
	Update(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, taskerrors.ErrInvalidTaskID
	}
	return parsed, nil
}

func parseDueDate(raw string) (*time.Time, error) {
	d, err := dateutil.Parse(raw)
	if err != nil {
		return nil, taskerrors.ErrInvalidDueDate
	}
	return d, nil
}

// parseRef treats nil and blank as "unassigned".
func parseRef(raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, taskerrors.ErrInvalidAssignee
	}
	return &id, nil
}

func isOpen(status string) bool {
	return status == StatusPending || status == StatusInProgress
}

// setStatus stamps CompletedAt on the way into done and clears it on the way out.
func (s *service) setStatus(t *Task, status string) {
	if status == t.Status {
		return
	}
	t.Status = status
	if status == StatusDone {
		now := s.now()
		t.CompletedAt = &now
		return
	}
	t.CompletedAt = nil
}

func (s *service) Create(ctx context.Context, createdBy uuid.UUID, req CreateTaskRequest) (TaskResponse, error) {
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, err
	}
	deptID, err := parseRef(req.AssignedDepartmentID)
	if err != nil {
		return TaskResponse{}, err
	}
	userID, err := parseRef(req.AssignedUserID)
	if err != nil {
		return TaskResponse{}, err
	}

	t := &Task{
		ID:                   uuid.New(),
		Title:                strings.TrimSpace(req.Title),
		Description:          req.Description,
		Status:               StatusPending,
		Priority:             req.Priority,
		AssignedDepartmentID: deptID,
		AssignedUserID:       userID,
		DueDate:              due,
		CreatedByID:          createdBy,
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if req.Status != "" {
		s.setStatus(t, req.Status)
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("task created",
		zap.String("task_id", t.ID.String()),
		zap.String("created_by", createdBy.String()),
	)
	return s.mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		res[i] = s.mapToResponse(t)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TaskResponse, error) {
	taskID, err := parseID(id)
	if err != nil {
		return TaskResponse{}, err
	}

	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	return s.mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error) {
	taskID, err := parseID(id)
	if err != nil {
		return TaskResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, taskID)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}

	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		s.setStatus(t, *req.Status)
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.AssignedDepartmentID != nil {
		if t.AssignedDepartmentID, err = parseRef(req.AssignedDepartmentID); err != nil {
			return TaskResponse{}, err
		}
		t.AssignedDepartment = nil
	}
	if req.AssignedUserID != nil {
		if t.AssignedUserID, err = parseRef(req.AssignedUserID); err != nil {
			return TaskResponse{}, err
		}
		t.AssignedUser = nil
	}
	if req.DueDate != nil {
		if t.DueDate, err = parseDueDate(*req.DueDate); err != nil {
			return TaskResponse{}, err
		}
	}

	if err := qtx.Update(ctx, t); err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TaskResponse{}, err
	}
	return s.mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	taskID, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("task deleted", zap.String("task_id", id))
	return nil
}

func (s *service) mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     dateutil.Format(t.DueDate),
		CreatedByID: t.CreatedByID.String(),
		CreatedAt:   dateutil.FormatTime(t.CreatedAt),
		UpdatedAt:   dateutil.FormatTime(t.UpdatedAt),
	}
	if t.AssignedDepartmentID != nil {
		v := t.AssignedDepartmentID.String()
		resp.AssignedDepartmentID = &v
	}
	if t.AssignedDepartment != nil {
		resp.AssignedDepartment = t.AssignedDepartment.Name
	}
	if t.AssignedUserID != nil {
		v := t.AssignedUserID.String()
		resp.AssignedUserID = &v
	}
	if t.AssignedUser != nil {
		resp.AssignedUserName = t.AssignedUser.FullName()
	}
	if t.CreatedBy != nil {
		resp.CreatedByName = t.CreatedBy.FullName()
	}
	if t.CompletedAt != nil {
		v := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &v
	}

	// A task due today is not overdue until tomorrow.
	status := t.Status
	if isOpen(status) {
		status = progress.StatusActive
	}
	today := s.now().Truncate(24 * time.Hour)
	resp.Overdue = progress.IsOverdue(progress.Deadline{PlannedEnd: t.DueDate, Status: status}, today)
	return resp
}
