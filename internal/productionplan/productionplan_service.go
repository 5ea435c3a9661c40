package productionplan

import (
	"context"
	"database/sql"
	"strings"
	"time"

	productionplanerrors "go-metallurg/internal/productionplan/errors"
	"go-metallurg/internal/shared/contextutil"
	"go-metallurg/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=productionplan_service.go -destination=mock/productionplan_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePlanRequest) (PlanResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]PlanResponse, error)
	GetByID(ctx context.Context, id string) (PlanResponse, error)
	Update(ctx context.Context, id string, req UpdatePlanRequest) (PlanResponse, error)
	Delete(ctx context.Context, id string) error
	AddProgress(ctx context.Context, id string, delta int) (PlanResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("productionplan.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("productionplan.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, productionplanerrors.ErrInvalidPlanID
	}
	return parsed, nil
}

func parseDeadline(raw string) (*time.Time, error) {
	d, err := dateutil.Parse(raw)
	if err != nil {
		return nil, productionplanerrors.ErrInvalidDeadline
	}
	return d, nil
}

// parseTechCardID treats an empty string as "no link".
func parseTechCardID(raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, productionplanerrors.ErrInvalidTechCard
	}
	return &id, nil
}

func (s *service) Create(ctx context.Context, req CreatePlanRequest) (PlanResponse, error) {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return PlanResponse{}, err
	}
	techCardID, err := parseTechCardID(req.TechCardID)
	if err != nil {
		return PlanResponse{}, err
	}

	plan := &ProductionPlan{
		ID:                uuid.New(),
		CustomerName:      strings.TrimSpace(req.CustomerName),
		OrderName:         strings.TrimSpace(req.OrderName),
		Quantity:          req.Quantity,
		CompletedQuantity: req.CompletedQuantity,
		Deadline:          deadline,
		Status:            req.Status,
		TechCardID:        techCardID,
		Priority:          req.Priority,
		Notes:             req.Notes,
	}
	if plan.Priority == "" {
		plan.Priority = PriorityMedium
	}
	derive(plan)

	if err := s.repo.Create(ctx, plan); err != nil {
		return PlanResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("production plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("order", plan.OrderName),
	)
	return mapToResponse(*plan), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]PlanResponse, error) {
	plans, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]PlanResponse, len(plans))
	for i, p := range plans {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PlanResponse, error) {
	planID, err := parseID(id)
	if err != nil {
		return PlanResponse{}, err
	}

	plan, err := s.repo.FindByID(ctx, planID)
	if err != nil {
		return PlanResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*plan), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePlanRequest) (PlanResponse, error) {
	planID, err := parseID(id)
	if err != nil {
		return PlanResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PlanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Locked so a concurrent progress booking cannot slip between the read
	// and the derived write below.
	plan, err := qtx.FindByIDForUpdate(ctx, planID)
	if err != nil {
		return PlanResponse{}, mapRepositoryError(err)
	}

	if req.CustomerName != nil {
		plan.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.OrderName != nil {
		plan.OrderName = strings.TrimSpace(*req.OrderName)
	}
	if req.Quantity != nil {
		plan.Quantity = *req.Quantity
	}
	if req.Deadline != nil {
		if plan.Deadline, err = parseDeadline(*req.Deadline); err != nil {
			return PlanResponse{}, err
		}
	}
	if req.Status != nil {
		plan.Status = *req.Status
	}
	if req.TechCardID != nil {
		if plan.TechCardID, err = parseTechCardID(req.TechCardID); err != nil {
			return PlanResponse{}, err
		}
	}
	if req.Priority != nil {
		plan.Priority = *req.Priority
	}
	if req.Notes != nil {
		plan.Notes = *req.Notes
	}
	derive(plan)

	if err := qtx.Update(ctx, plan); err != nil {
		return PlanResponse{}, mapRepositoryError(err)
	}

	updated, err := qtx.FindByID(ctx, planID)
	if err != nil {
		return PlanResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PlanResponse{}, err
	}
	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	planID, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, planID); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("production plan deleted", zap.String("plan_id", id))
	return nil
}

// AddProgress books delta completed units. The counter increment and the
// recompute share one transaction.
func (s *service) AddProgress(ctx context.Context, id string, delta int) (PlanResponse, error) {
	planID, err := parseID(id)
	if err != nil {
		return PlanResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PlanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := ApplyProgress(ctx, qtx, planID, delta); err != nil {
		return PlanResponse{}, err
	}

	plan, err := qtx.FindByID(ctx, planID)
	if err != nil {
		return PlanResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PlanResponse{}, err
	}

	l := contextutil.GetLogger(ctx, s.logger)
	if plan.CompletedQuantity > plan.Quantity {
		l.Warn("production plan over-fulfilled",
			zap.String("plan_id", id),
			zap.Int("planned", plan.Quantity),
			zap.Int("completed", plan.CompletedQuantity),
		)
	}
	l.Info("production plan progress added",
		zap.String("plan_id", id),
		zap.Int("delta", delta),
		zap.Int("progress_percent", plan.ProgressPercent),
	)
	return mapToResponse(*plan), nil
}

func mapToResponse(p ProductionPlan) PlanResponse {
	resp := PlanResponse{
		ID:                p.ID.String(),
		CustomerName:      p.CustomerName,
		OrderName:         p.OrderName,
		Quantity:          p.Quantity,
		CompletedQuantity: p.CompletedQuantity,
		ProgressPercent:   p.ProgressPercent,
		Deadline:          dateutil.Format(p.Deadline),
		Status:            p.Status,
		Priority:          p.Priority,
		Notes:             p.Notes,
		CreatedAt:         dateutil.FormatTime(p.CreatedAt),
		UpdatedAt:         dateutil.FormatTime(p.UpdatedAt),
	}
	if p.TechCardID != nil {
		v := p.TechCardID.String()
		resp.TechCardID = &v
	}
	if p.TechCard != nil {
		resp.TechCardProduct = p.TechCard.ProductName
	}
	return resp
}
