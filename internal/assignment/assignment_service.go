package assignment

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"strings"
	"time"

	assignmenterrors "go-metallurg/internal/assignment/errors"
	"go-metallurg/internal/events"
	"go-metallurg/internal/messaging/kafka"
	"go-metallurg/internal/productionplan"
	"go-metallurg/internal/progress"
	"go-metallurg/internal/shared/contextutil"
	"go-metallurg/internal/shared/dateutil"
	"go-metallurg/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const importDeadline = 2 * time.Minute

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]AssignmentResponse, error)
	GetMine(ctx context.Context, operatorID uuid.UUID, filter ListFilter) ([]AssignmentResponse, error)
	GetByID(ctx context.Context, id string) (AssignmentResponse, error)
	Update(ctx context.Context, id string, req UpdateAssignmentRequest) (AssignmentResponse, error)
	Delete(ctx context.Context, id string) error

	Start(ctx context.Context, id string, actor Actor) (AssignmentResponse, error)
	Complete(ctx context.Context, id string, actor Actor, req CompleteRequest) (AssignmentResponse, error)

	Import(ctx context.Context, body io.Reader) (ImportResult, error)
	Template() ([]byte, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	plans    productionplan.Repository
	outbox   kafka.OutboxRepository
	importer *Importer
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	plans productionplan.Repository,
	outbox kafka.OutboxRepository,
	importer *Importer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		plans:    plans,
		outbox:   outbox,
		importer: importer,
		now:      time.Now,
		logger:   l,
	}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, assignmenterrors.ErrInvalidAssignmentID
	}
	return parsed, nil
}

func parseShiftDate(raw string) (time.Time, error) {
	d, err := dateutil.Parse(raw)
	if err != nil || d == nil {
		return time.Time{}, assignmenterrors.ErrInvalidShiftDate
	}
	return *d, nil
}

// parseRef treats nil and "" as no link.
func parseRef(raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, assignmenterrors.ErrInvalidReference
	}
	return &id, nil
}

func (s *service) Create(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error) {
	operatorID, err := uuid.Parse(req.OperatorID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidReference
	}
	shiftDate, err := parseShiftDate(req.ShiftDate)
	if err != nil {
		return AssignmentResponse{}, err
	}
	techCardID, err := parseRef(req.TechCardID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	planID, err := parseRef(req.ProductionPlanID)
	if err != nil {
		return AssignmentResponse{}, err
	}

	a := &Assignment{
		ID:               uuid.New(),
		OperatorID:       operatorID,
		ShiftDate:        shiftDate,
		ShiftType:        req.ShiftType,
		TaskDescription:  req.TaskDescription,
		MachineNumber:    strings.TrimSpace(req.MachineNumber),
		PlannedQuantity:  req.PlannedQuantity,
		TechCardID:       techCardID,
		ProductionPlanID: planID,
		Status:           StatusAssigned,
		Notes:            req.Notes,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("assignment created",
		zap.String("assignment_id", a.ID.String()),
		zap.String("operator_id", a.OperatorID.String()),
		zap.String("machine", a.MachineNumber),
	)
	return s.reload(ctx, s.repo, a.ID)
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]AssignmentResponse, error) {
	if filter.ShiftDate != "" {
		d, err := parseShiftDate(filter.ShiftDate)
		if err != nil {
			return nil, err
		}
		filter.ShiftDate = d.Format(dateutil.Layout)
	}

	assignments, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		res[i] = mapToResponse(a)
	}
	return res, nil
}

func (s *service) GetMine(ctx context.Context, operatorID uuid.UUID, filter ListFilter) ([]AssignmentResponse, error) {
	filter.OperatorID = operatorID.String()
	return s.GetAll(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id string) (AssignmentResponse, error) {
	assignmentID, err := parseID(id)
	if err != nil {
		return AssignmentResponse{}, err
	}
	return s.reload(ctx, s.repo, assignmentID)
}

func (s *service) reload(ctx context.Context, repo Repository, id uuid.UUID) (AssignmentResponse, error) {
	a, err := repo.FindByID(ctx, id)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

// Update edits fields directly. Counters of linked plans only move through
// Complete.
func (s *service) Update(ctx context.Context, id string, req UpdateAssignmentRequest) (AssignmentResponse, error) {
	assignmentID, err := parseID(id)
	if err != nil {
		return AssignmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, assignmentID)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	if req.OperatorID != nil {
		operatorID, err := uuid.Parse(*req.OperatorID)
		if err != nil {
			return AssignmentResponse{}, assignmenterrors.ErrInvalidReference
		}
		a.OperatorID = operatorID
	}
	if req.ShiftDate != nil {
		if a.ShiftDate, err = parseShiftDate(*req.ShiftDate); err != nil {
			return AssignmentResponse{}, err
		}
	}
	if req.ShiftType != nil {
		a.ShiftType = *req.ShiftType
	}
	if req.TaskDescription != nil {
		a.TaskDescription = *req.TaskDescription
	}
	if req.MachineNumber != nil {
		a.MachineNumber = strings.TrimSpace(*req.MachineNumber)
	}
	if req.PlannedQuantity != nil {
		a.PlannedQuantity = *req.PlannedQuantity
	}
	if req.ActualQuantity != nil {
		a.ActualQuantity = req.ActualQuantity
	}
	if req.TechCardID != nil {
		if a.TechCardID, err = parseRef(req.TechCardID); err != nil {
			return AssignmentResponse{}, err
		}
	}
	if req.ProductionPlanID != nil {
		if a.ProductionPlanID, err = parseRef(req.ProductionPlanID); err != nil {
			return AssignmentResponse{}, err
		}
	}
	if req.Status != nil {
		a.Status = *req.Status
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}

	if err := qtx.Update(ctx, a); err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	resp, err := s.reload(ctx, qtx, assignmentID)
	if err != nil {
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	assignmentID, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, assignmentID); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("assignment deleted", zap.String("assignment_id", id))
	return nil
}

func checkOwner(a *Assignment, actor Actor) error {
	if actor.Role == user.RoleEmployee && a.OperatorID != actor.ID {
		return assignmenterrors.ErrNotOwnAssignment
	}
	return nil
}

func (s *service) Start(ctx context.Context, id string, actor Actor) (AssignmentResponse, error) {
	assignmentID, err := parseID(id)
	if err != nil {
		return AssignmentResponse{}, err
	}

	a, err := s.repo.FindByID(ctx, assignmentID)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	if err := checkOwner(a, actor); err != nil {
		return AssignmentResponse{}, err
	}

	err = s.repo.Transition(ctx, assignmentID, []string{StatusAssigned}, map[string]any{
		"status":     StatusInProgress,
		"started_at": s.now(),
	})
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("assignment started", zap.String("assignment_id", id))
	return s.reload(ctx, s.repo, assignmentID)
}

// Complete closes the assignment, adds its output to the linked production
// plan and queues an assignment.completed event, all in one transaction. The
// tech card total is updated by the event consumer.
func (s *service) Complete(ctx context.Context, id string, actor Actor, req CompleteRequest) (AssignmentResponse, error) {
	assignmentID, err := parseID(id)
	if err != nil {
		return AssignmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, assignmentID)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	if err := checkOwner(a, actor); err != nil {
		return AssignmentResponse{}, err
	}

	quantity := *req.ActualQuantity
	now := s.now()
	changes := map[string]any{
		"status":          StatusCompleted,
		"actual_quantity": quantity,
		"completed_at":    now,
	}
	if a.StartedAt == nil {
		changes["started_at"] = now
	}
	if req.Notes != "" {
		changes["notes"] = req.Notes
	}

	if err := qtx.Transition(ctx, assignmentID, []string{StatusAssigned, StatusInProgress}, changes); err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	l := contextutil.GetLogger(ctx, s.logger)

	if a.ProductionPlanID != nil && quantity != 0 {
		plan, err := productionplan.ApplyProgress(ctx, s.plans.WithTx(tx), *a.ProductionPlanID, quantity)
		if err != nil {
			return AssignmentResponse{}, err
		}
		if plan.CompletedQuantity > plan.Quantity {
			l.Warn("production plan over-fulfilled",
				zap.String("plan_id", plan.ID.String()),
				zap.Int("planned", plan.Quantity),
				zap.Int("completed", plan.CompletedQuantity),
			)
		}
	}

	if s.outbox != nil {
		if err := s.queueCompleted(ctx, tx, a, quantity, now); err != nil {
			l.Error("assignment completed outbox persist failed",
				zap.String("assignment_id", id),
				zap.Error(err),
			)
			return AssignmentResponse{}, err
		}
	}

	resp, err := s.reload(ctx, qtx, assignmentID)
	if err != nil {
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("commit failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, err
	}

	l.Info("assignment completed",
		zap.String("assignment_id", id),
		zap.Int("planned", a.PlannedQuantity),
		zap.Int("actual", quantity),
	)
	return resp, nil
}

func (s *service) queueCompleted(ctx context.Context, tx *sql.Tx, a *Assignment, quantity int, at time.Time) error {
	rid := contextutil.GetRequestID(ctx)
	event := events.AssignmentCompletedEvent{
		EventType:      events.AssignmentCompletedType,
		RequestID:      rid,
		AssignmentID:   a.ID.String(),
		OperatorID:     a.OperatorID.String(),
		ActualQuantity: quantity,
		ShiftDate:      a.ShiftDate.Format(dateutil.Layout),
		OccurredAt:     at.UTC(),
	}
	if a.TechCardID != nil {
		event.TechCardID = a.TechCardID.String()
	}
	if a.ProductionPlanID != nil {
		event.ProductionPlanID = a.ProductionPlanID.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "assignment",
		AggregateID:   a.ID.String(),
		EventType:     event.EventType,
		Topic:         events.AssignmentCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Import(ctx context.Context, body io.Reader) (ImportResult, error) {
	rows, err := ParseSheet(body)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("spreadsheet rejected", zap.Error(err))
		return ImportResult{}, assignmenterrors.ErrUnreadableFile
	}
	if len(rows) == 0 {
		return ImportResult{}, assignmenterrors.ErrEmptyFile
	}

	ctx, cancel := context.WithTimeout(ctx, importDeadline)
	defer cancel()

	res := s.importer.Import(ctx, rows)

	contextutil.GetLogger(ctx, s.logger).Info("assignments imported",
		zap.Int("total", res.Summary.Total),
		zap.Int("created", res.Summary.Created),
		zap.Int("errors", res.Summary.Errors),
		zap.Int("skipped", res.Summary.Skipped),
	)
	return res, nil
}

func (s *service) Template() ([]byte, error) {
	return BuildTemplate()
}

func mapToResponse(a Assignment) AssignmentResponse {
	actual := 0
	if a.ActualQuantity != nil {
		actual = *a.ActualQuantity
	}

	resp := AssignmentResponse{
		ID:              a.ID.String(),
		OperatorID:      a.OperatorID.String(),
		ShiftDate:       a.ShiftDate.Format(dateutil.Layout),
		ShiftType:       a.ShiftType,
		TaskDescription: a.TaskDescription,
		MachineNumber:   a.MachineNumber,
		PlannedQuantity: a.PlannedQuantity,
		ActualQuantity:  a.ActualQuantity,
		ProgressPercent: progress.Percent(actual, a.PlannedQuantity),
		Status:          a.Status,
		StartedAt:       formatTimestamp(a.StartedAt),
		CompletedAt:     formatTimestamp(a.CompletedAt),
		Notes:           a.Notes,
		CreatedAt:       dateutil.FormatTime(a.CreatedAt),
		UpdatedAt:       dateutil.FormatTime(a.UpdatedAt),
	}
	if a.Operator != nil {
		resp.OperatorName = a.Operator.FullName()
		resp.OperatorUsername = a.Operator.Username
	}
	if a.TechCardID != nil {
		v := a.TechCardID.String()
		resp.TechCardID = &v
	}
	if a.TechCard != nil {
		resp.TechCardProduct = a.TechCard.ProductName
	}
	if a.ProductionPlanID != nil {
		v := a.ProductionPlanID.String()
		resp.ProductionPlanID = &v
	}
	if a.ProductionPlan != nil {
		resp.ProductionPlanOrder = a.ProductionPlan.OrderName
	}
	return resp
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := dateutil.FormatTime(*t)
	return &v
}
