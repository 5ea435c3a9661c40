package techcard

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"go-metallurg/internal/progress"
	"go-metallurg/internal/shared/contextutil"
	"go-metallurg/internal/shared/dateutil"
	"go-metallurg/internal/shared/dbtx"
	"go-metallurg/internal/storage"
	techcarderrors "go-metallurg/internal/techcard/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const pdfFolder = "techcards"

//go:generate mockgen -source=techcard_service.go -destination=mock/techcard_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor uuid.UUID, req CreateTechCardRequest) (TechCardResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]TechCardResponse, error)
	GetByID(ctx context.Context, id string, viewer uuid.UUID) (TechCardResponse, error)
	Update(ctx context.Context, id string, req UpdateTechCardRequest) (TechCardResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (StatsResponse, error)

	AttachPDF(ctx context.Context, id string, upload Upload) (TechCardResponse, error)
	DetachPDF(ctx context.Context, id string) (TechCardResponse, error)

	RecordExecution(ctx context.Context, id string, actor uuid.UUID, req CreateExecutionRequest) (RecordExecutionResponse, error)
	RecordAssignmentExecution(ctx context.Context, in AssignmentExecution) error
	GetExecutions(ctx context.Context, id string) ([]ExecutionResponse, error)

	RecordAccess(ctx context.Context, id string, actor uuid.UUID, action string) (AccessResponse, error)
	GetAccessLog(ctx context.Context, id string) ([]AccessResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	store       storage.Storage
	maxPDFBytes int64
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, store storage.Storage, maxPDFBytes int64, logger ...*zap.Logger) Service {
	l := zap.L().Named("techcard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("techcard.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		store:       store,
		maxPDFBytes: maxPDFBytes,
		now:         time.Now,
		logger:      l,
	}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, techcarderrors.ErrInvalidTechCardID
	}
	return parsed, nil
}

func parseDate(raw string) (*time.Time, error) {
	d, err := dateutil.Parse(raw)
	if err != nil {
		return nil, techcarderrors.ErrInvalidDate
	}
	return d, nil
}

func normalizePartNumber(raw *string) *string {
	if raw == nil {
		return nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil
	}
	return &v
}

func (s *service) Create(ctx context.Context, actor uuid.UUID, req CreateTechCardRequest) (TechCardResponse, error) {
	planned, err := parseDate(req.PlannedEndDate)
	if err != nil {
		return TechCardResponse{}, err
	}

	card := &TechCard{
		ID:             uuid.New(),
		Customer:       strings.TrimSpace(req.Customer),
		Order:          strings.TrimSpace(req.Order),
		ProductName:    strings.TrimSpace(req.ProductName),
		PartNumber:     normalizePartNumber(req.PartNumber),
		Quantity:       req.Quantity,
		Status:         req.Status,
		Priority:       req.Priority,
		PlannedEndDate: planned,
		Notes:          req.Notes,
	}
	if card.Status == "" {
		card.Status = StatusDraft
	}
	if card.Priority == "" {
		card.Priority = PriorityMedium
	}
	if actor != uuid.Nil {
		card.CreatedByID = &actor
	}

	if err := s.repo.Create(ctx, card); err != nil {
		return TechCardResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("tech card created",
		zap.String("tech_card_id", card.ID.String()),
		zap.String("order", card.Order),
	)
	return s.mapToResponse(*card, nil), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]TechCardResponse, error) {
	cards, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	executions, err := s.repo.FindExecutions(ctx, ids...)
	if err != nil {
		return nil, err
	}

	byCard := make(map[uuid.UUID][]Execution, len(cards))
	for _, e := range executions {
		byCard[e.TechCardID] = append(byCard[e.TechCardID], e)
	}

	res := make([]TechCardResponse, len(cards))
	for i, c := range cards {
		res[i] = s.mapToResponse(c, byCard[c.ID])
	}
	return res, nil
}

// GetByID also appends a view entry to the access log. A failed log write is
// reported but does not fail the read.
func (s *service) GetByID(ctx context.Context, id string, viewer uuid.UUID) (TechCardResponse, error) {
	cardID, err := parseID(id)
	if err != nil {
		return TechCardResponse{}, err
	}

	resp, err := s.load(ctx, s.repo, cardID)
	if err != nil {
		return TechCardResponse{}, err
	}

	if viewer != uuid.Nil {
		access := &Access{
			ID:         uuid.New(),
			TechCardID: cardID,
			UserID:     viewer,
			Action:     AccessView,
			AccessedAt: s.now(),
		}
		if err := s.repo.CreateAccess(ctx, access); err != nil {
			contextutil.GetLogger(ctx, s.logger).Warn("failed to record tech card view",
				zap.String("tech_card_id", id),
				zap.Error(err),
			)
		}
	}

	return resp, nil
}

func (s *service) load(ctx context.Context, repo Repository, id uuid.UUID) (TechCardResponse, error) {
	card, err := repo.FindByID(ctx, id)
	if err != nil {
		return TechCardResponse{}, mapRepositoryError(err)
	}
	executions, err := repo.FindExecutions(ctx, id)
	if err != nil {
		return TechCardResponse{}, err
	}
	return s.mapToResponse(*card, executions), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTechCardRequest) (TechCardResponse, error) {
	cardID, err := parseID(id)
	if err != nil {
		return TechCardResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TechCardResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	card, err := qtx.FindByID(ctx, cardID)
	if err != nil {
		return TechCardResponse{}, mapRepositoryError(err)
	}

	if req.Customer != nil {
		card.Customer = strings.TrimSpace(*req.Customer)
	}
	if req.Order != nil {
		card.Order = strings.TrimSpace(*req.Order)
	}
	if req.ProductName != nil {
		card.ProductName = strings.TrimSpace(*req.ProductName)
	}
	if req.PartNumber != nil {
		card.PartNumber = normalizePartNumber(req.PartNumber)
	}
	if req.Quantity != nil {
		card.Quantity = *req.Quantity
	}
	if req.Status != nil {
		card.Status = *req.Status
	}
	if req.Priority != nil {
		card.Priority = *req.Priority
	}
	if req.PlannedEndDate != nil {
		if card.PlannedEndDate, err = parseDate(*req.PlannedEndDate); err != nil {
			return TechCardResponse{}, err
		}
	}
	if req.ActualEndDate != nil {
		if card.ActualEndDate, err = parseDate(*req.ActualEndDate); err != nil {
			return TechCardResponse{}, err
		}
	}
	if req.Notes != nil {
		card.Notes = *req.Notes
	}

	if err := qtx.Update(ctx, card); err != nil {
		return TechCardResponse{}, mapRepositoryError(err)
	}

	resp, err := s.load(ctx, qtx, cardID)
	if err != nil {
		return TechCardResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TechCardResponse{}, err
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	cardID, err := parseID(id)
	if err != nil {
		return err
	}

	card, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, cardID); err != nil {
		return mapRepositoryError(err)
	}

	l := contextutil.GetLogger(ctx, s.logger)
	if card.PdfURL != "" {
		if err := s.store.Remove(ctx, card.PdfURL); err != nil {
			l.Warn("failed to remove tech card pdf", zap.String("url", card.PdfURL), zap.Error(err))
		}
	}

	l.Info("tech card deleted", zap.String("tech_card_id", id))
	return nil
}

func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	cards, err := s.repo.FindAll(ctx, ListFilter{})
	if err != nil {
		return StatsResponse{}, err
	}

	stats := StatsResponse{Total: len(cards), ByStatus: make(map[string]int, len(Statuses))}
	for _, st := range Statuses {
		stats.ByStatus[st] = 0
	}

	now := s.now()
	for _, c := range cards {
		stats.ByStatus[c.Status]++
		if progress.IsOverdue(deadlineOf(c), now) {
			stats.Overdue++
		}
	}
	return stats, nil
}

func isPDF(u Upload) bool {
	ct := strings.ToLower(strings.TrimSpace(u.ContentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == "application/pdf" || strings.EqualFold(filepath.Ext(u.Filename), ".pdf")
}

// AttachPDF stores the file, points the card at it and removes the file it
// replaces. The new file is removed again when the card update fails.
func (s *service) AttachPDF(ctx context.Context, id string, upload Upload) (TechCardResponse, error) {
	cardID, err := parseID(id)
	if err != nil {
		return TechCardResponse{}, err
	}
	if upload.Body == nil {
		return TechCardResponse{}, techcarderrors.ErrFileRequired
	}
	if !isPDF(upload) {
		return TechCardResponse{}, techcarderrors.ErrNotPDF
	}
	if s.maxPDFBytes > 0 && upload.Size > s.maxPDFBytes {
		return TechCardResponse{}, techcarderrors.ErrFileTooLarge
	}

	card, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		return TechCardResponse{}, mapRepositoryError(err)
	}

	l := contextutil.GetLogger(ctx, s.logger)

	stored, err := s.store.Save(ctx, pdfFolder, upload.Filename, upload.Body)
	if err != nil {
		l.Error("failed to store tech card pdf", zap.String("tech_card_id", id), zap.Error(err))
		return TechCardResponse{}, err
	}

	previous := card.PdfURL
	card.PdfURL = stored.URL
	card.PdfFileSize = stored.Size

	if err := s.repo.Update(ctx, card); err != nil {
		_ = s.store.Remove(ctx, stored.URL)
		return TechCardResponse{}, mapRepositoryError(err)
	}

	if previous != "" && previous != stored.URL {
		if err := s.store.Remove(ctx, previous); err != nil {
			l.Warn("failed to remove replaced pdf", zap.String("url", previous), zap.Error(err))
		}
	}

	l.Info("tech card pdf attached",
		zap.String("tech_card_id", id),
		zap.String("url", stored.URL),
		zap.Int64("size", stored.Size),
	)
	return s.load(ctx, s.repo, cardID)
}

func (s *service) DetachPDF(ctx context.Context, id string) (TechCardResponse, error) {
	cardID, err := parseID(id)
	if err != nil {
		return TechCardResponse{}, err
	}

	card, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		return TechCardResponse{}, mapRepositoryError(err)
	}
	if card.PdfURL == "" {
		return TechCardResponse{}, techcarderrors.ErrNoPDF
	}

	previous := card.PdfURL
	card.PdfURL = ""
	card.PdfFileSize = 0
	if err := s.repo.Update(ctx, card); err != nil {
		return TechCardResponse{}, mapRepositoryError(err)
	}

	if err := s.store.Remove(ctx, previous); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("failed to remove detached pdf", zap.String("url", previous), zap.Error(err))
	}
	return s.load(ctx, s.repo, cardID)
}

func (s *service) RecordExecution(ctx context.Context, id string, actor uuid.UUID, req CreateExecutionRequest) (RecordExecutionResponse, error) {
	cardID, err := parseID(id)
	if err != nil {
		return RecordExecutionResponse{}, err
	}

	execution := &Execution{
		ID:               uuid.New(),
		TechCardID:       cardID,
		ExecutedByID:     actor,
		QuantityProduced: req.QuantityProduced,
		SetupNumber:      strings.TrimSpace(req.SetupNumber),
		ExecutedAt:       s.now(),
	}

	card, err := s.record(ctx, execution)
	if err != nil {
		return RecordExecutionResponse{}, err
	}

	return RecordExecutionResponse{
		Execution: mapExecution(*execution),
		TechCard:  card,
	}, nil
}

// RecordAssignmentExecution books the output of a completed assignment. A
// second call for the same assignment returns ErrExecutionAlreadyRecorded.
func (s *service) RecordAssignmentExecution(ctx context.Context, in AssignmentExecution) error {
	assignmentID := in.AssignmentID
	execution := &Execution{
		ID:               uuid.New(),
		TechCardID:       in.TechCardID,
		ExecutedByID:     in.OperatorID,
		QuantityProduced: in.Quantity,
		SetupNumber:      "",
		AssignmentID:     &assignmentID,
		ExecutedAt:       s.now(),
	}

	_, err := s.record(ctx, execution)
	return err
}

// record inserts the execution and bumps the card total in one transaction.
// The increment is a single UPDATE so concurrent executions never lose units.
func (s *service) record(ctx context.Context, execution *Execution) (TechCardResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TechCardResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, execution.TechCardID); err != nil {
		return TechCardResponse{}, mapRepositoryError(err)
	}

	if err := qtx.CreateExecution(ctx, execution); err != nil {
		if execution.AssignmentID != nil && dbtx.IsDuplicateKey(err, "uq_techcard_executions_assignment") {
			return TechCardResponse{}, techcarderrors.ErrExecutionAlreadyRecorded
		}
		return TechCardResponse{}, mapRepositoryError(err)
	}

	if err := qtx.AddProduced(ctx, execution.TechCardID, execution.QuantityProduced); err != nil {
		return TechCardResponse{}, mapRepositoryError(err)
	}

	resp, err := s.load(ctx, qtx, execution.TechCardID)
	if err != nil {
		return TechCardResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TechCardResponse{}, err
	}

	l := contextutil.GetLogger(ctx, s.logger)
	if resp.TotalProducedQuantity > resp.Quantity {
		l.Warn("tech card over-produced",
			zap.String("tech_card_id", resp.ID),
			zap.Int("planned", resp.Quantity),
			zap.Int("produced", resp.TotalProducedQuantity),
		)
	}
	l.Info("execution recorded",
		zap.String("tech_card_id", resp.ID),
		zap.String("executed_by", execution.ExecutedByID.String()),
		zap.Int("quantity", execution.QuantityProduced),
	)
	return resp, nil
}

func (s *service) GetExecutions(ctx context.Context, id string) ([]ExecutionResponse, error) {
	cardID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, cardID); err != nil {
		return nil, mapRepositoryError(err)
	}

	executions, err := s.repo.FindExecutions(ctx, cardID)
	if err != nil {
		return nil, err
	}

	res := make([]ExecutionResponse, len(executions))
	for i, e := range executions {
		res[i] = mapExecution(e)
	}
	return res, nil
}

func (s *service) RecordAccess(ctx context.Context, id string, actor uuid.UUID, action string) (AccessResponse, error) {
	cardID, err := parseID(id)
	if err != nil {
		return AccessResponse{}, err
	}
	if _, err := s.repo.FindByID(ctx, cardID); err != nil {
		return AccessResponse{}, mapRepositoryError(err)
	}

	access := &Access{
		ID:         uuid.New(),
		TechCardID: cardID,
		UserID:     actor,
		Action:     action,
		AccessedAt: s.now(),
	}
	if err := s.repo.CreateAccess(ctx, access); err != nil {
		return AccessResponse{}, mapRepositoryError(err)
	}
	return mapAccess(*access), nil
}

func (s *service) GetAccessLog(ctx context.Context, id string) ([]AccessResponse, error) {
	cardID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, cardID); err != nil {
		return nil, mapRepositoryError(err)
	}

	accesses, err := s.repo.FindAccesses(ctx, cardID)
	if err != nil {
		return nil, err
	}

	res := make([]AccessResponse, len(accesses))
	for i, a := range accesses {
		res[i] = mapAccess(a)
	}
	return res, nil
}

func deadlineOf(c TechCard) progress.Deadline {
	return progress.Deadline{
		PlannedEnd: c.PlannedEndDate,
		ActualEnd:  c.ActualEndDate,
		Status:     c.Status,
	}
}

func (s *service) mapToResponse(c TechCard, executions []Execution) TechCardResponse {
	now := s.now()

	events := make([]progress.Execution, len(executions))
	for i, e := range executions {
		events[i] = progress.Execution{ExecutedBy: e.ExecutedByID, ExecutedAt: e.ExecutedAt}
	}

	resp := TechCardResponse{
		ID:                    c.ID.String(),
		Customer:              c.Customer,
		Order:                 c.Order,
		ProductName:           c.ProductName,
		PartNumber:            c.PartNumber,
		Quantity:              c.Quantity,
		PdfURL:                c.PdfURL,
		PdfFileSize:           c.PdfFileSize,
		TotalProducedQuantity: c.TotalProducedQuantity,
		Status:                c.Status,
		Priority:              c.Priority,
		PlannedEndDate:        dateutil.Format(c.PlannedEndDate),
		ActualEndDate:         dateutil.Format(c.ActualEndDate),
		Notes:                 c.Notes,
		CreatedByName:         c.CreatedBy.FullName(),

		ProgressPercent:      progress.Percent(c.TotalProducedQuantity, c.Quantity),
		IsOverdue:            progress.IsOverdue(deadlineOf(c), now),
		DaysToDeadline:       progress.DaysToDeadline(deadlineOf(c), now),
		UniqueOperatorsCount: progress.UniqueOperatorsCount(events),
		ExecutionsCount:      len(executions),

		CreatedAt: dateutil.FormatTime(c.CreatedAt),
		UpdatedAt: dateutil.FormatTime(c.UpdatedAt),
	}
	if c.PdfURL != "" {
		resp.PdfFileSizeFormatted = progress.FormatFileSize(c.PdfFileSize)
	}
	if c.CreatedByID != nil {
		id := c.CreatedByID.String()
		resp.CreatedByID = &id
	}
	if last := progress.LastActivity(events); last != nil {
		at := dateutil.FormatTime(*last)
		resp.LastActivity = &at
	}
	return resp
}

func mapExecution(e Execution) ExecutionResponse {
	resp := ExecutionResponse{
		ID:               e.ID.String(),
		TechCardID:       e.TechCardID.String(),
		ExecutedByID:     e.ExecutedByID.String(),
		ExecutedByName:   e.ExecutedBy.FullName(),
		QuantityProduced: e.QuantityProduced,
		SetupNumber:      e.SetupNumber,
		ExecutedAt:       dateutil.FormatTime(e.ExecutedAt),
	}
	if e.AssignmentID != nil {
		id := e.AssignmentID.String()
		resp.AssignmentID = &id
	}
	return resp
}

func mapAccess(a Access) AccessResponse {
	return AccessResponse{
		ID:         a.ID.String(),
		TechCardID: a.TechCardID.String(),
		UserID:     a.UserID.String(),
		UserName:   a.User.FullName(),
		Action:     a.Action,
		AccessedAt: dateutil.FormatTime(a.AccessedAt),
	}
}
