package techcard_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"go-metallurg/internal/storage"
	storageMock "go-metallurg/internal/storage/mock"
	"go-metallurg/internal/techcard"
	techcarderrors "go-metallurg/internal/techcard/errors"
	techcardMock "go-metallurg/internal/techcard/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// memRepository keeps cards and executions in memory. AddProduced adds to the
// stored total the same way the SQL increment does.
type memRepository struct {
	cards      map[uuid.UUID]*techcard.TechCard
	executions []techcard.Execution
	accesses   []techcard.Access
}

func newMemRepository() *memRepository {
	return &memRepository{cards: map[uuid.UUID]*techcard.TechCard{}}
}

func (r *memRepository) WithTx(tx *sql.Tx) techcard.Repository { return r }

func (r *memRepository) Create(ctx context.Context, card *techcard.TechCard) error {
	c := *card
	r.cards[card.ID] = &c
	return nil
}

func (r *memRepository) FindAll(ctx context.Context, filter techcard.ListFilter) ([]techcard.TechCard, error) {
	var out []techcard.TechCard
	for _, c := range r.cards {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memRepository) FindByID(ctx context.Context, id uuid.UUID) (*techcard.TechCard, error) {
	c, ok := r.cards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memRepository) FindByCustomerOrder(ctx context.Context, customer, order string) (*techcard.TechCard, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepository) Update(ctx context.Context, card *techcard.TechCard) error {
	c := *card
	c.TotalProducedQuantity = r.cards[card.ID].TotalProducedQuantity
	r.cards[card.ID] = &c
	return nil
}

func (r *memRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.cards, id)
	return nil
}

func (r *memRepository) AddProduced(ctx context.Context, id uuid.UUID, delta int) error {
	c, ok := r.cards[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.TotalProducedQuantity += delta
	return nil
}

func (r *memRepository) CreateExecution(ctx context.Context, e *techcard.Execution) error {
	r.executions = append(r.executions, *e)
	return nil
}

func (r *memRepository) FindExecutions(ctx context.Context, ids ...uuid.UUID) ([]techcard.Execution, error) {
	var out []techcard.Execution
	for _, e := range r.executions {
		for _, id := range ids {
			if e.TechCardID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (r *memRepository) CreateAccess(ctx context.Context, a *techcard.Access) error {
	r.accesses = append(r.accesses, *a)
	return nil
}

func (r *memRepository) FindAccesses(ctx context.Context, id uuid.UUID) ([]techcard.Access, error) {
	return r.accesses, nil
}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestService_ExecutionsRollUpIntoTotal(t *testing.T) {
	ctx := context.Background()
	db, sqlMock := newSQLMock(t)
	repo := newMemRepository()
	svc := techcard.NewService(db, repo, nil, 0)

	master := uuid.New()
	card, err := svc.Create(ctx, master, techcard.CreateTechCardRequest{
		Customer:    "Уралмаш",
		Order:       "З-1042",
		ProductName: "Вал",
		Quantity:    100,
	})
	assert.NoError(t, err)
	assert.Equal(t, techcard.StatusDraft, card.Status)
	assert.Equal(t, techcard.PriorityMedium, card.Priority)

	op1, op2 := uuid.New(), uuid.New()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	_, err = svc.RecordExecution(ctx, card.ID, op1, techcard.CreateExecutionRequest{QuantityProduced: 30, SetupNumber: "1"})
	assert.NoError(t, err)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	res, err := svc.RecordExecution(ctx, card.ID, op2, techcard.CreateExecutionRequest{QuantityProduced: 40, SetupNumber: "2"})
	assert.NoError(t, err)

	assert.Equal(t, 70, res.TechCard.TotalProducedQuantity)
	assert.Equal(t, 70, res.TechCard.ProgressPercent)
	assert.Equal(t, 2, res.TechCard.UniqueOperatorsCount)
	assert.Equal(t, 2, res.TechCard.ExecutionsCount)
	assert.NotNil(t, res.TechCard.LastActivity)
	assert.Equal(t, 40, res.Execution.QuantityProduced)

	viewer := uuid.New()
	got, err := svc.GetByID(ctx, card.ID, viewer)
	assert.NoError(t, err)
	assert.Equal(t, 70, got.TotalProducedQuantity)
	assert.Len(t, repo.accesses, 1)
	assert.Equal(t, techcard.AccessView, repo.accesses[0].Action)
	assert.Equal(t, viewer, repo.accesses[0].UserID)

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_OverProductionIsAllowed(t *testing.T) {
	ctx := context.Background()
	db, sqlMock := newSQLMock(t)
	svc := techcard.NewService(db, newMemRepository(), nil, 0)

	card, err := svc.Create(ctx, uuid.Nil, techcard.CreateTechCardRequest{
		Customer: "A", Order: "B", ProductName: "C", Quantity: 10,
	})
	assert.NoError(t, err)
	assert.Nil(t, card.CreatedByID)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	res, err := svc.RecordExecution(ctx, card.ID, uuid.New(), techcard.CreateExecutionRequest{QuantityProduced: 15})

	assert.NoError(t, err)
	assert.Equal(t, 15, res.TechCard.TotalProducedQuantity)
	assert.Equal(t, 150, res.TechCard.ProgressPercent)
}

func TestService_RecordAssignmentExecution(t *testing.T) {
	ctx := context.Background()
	cardID := uuid.New()
	in := techcard.AssignmentExecution{
		TechCardID:   cardID,
		OperatorID:   uuid.New(),
		AssignmentID: uuid.New(),
		Quantity:     12,
	}

	t.Run("duplicate assignment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := techcardMock.NewMockRepository(ctrl)
		db, sqlMock := newSQLMock(t)
		svc := techcard.NewService(db, repo, nil, 0)

		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().FindByID(ctx, cardID).Return(&techcard.TechCard{ID: cardID, Quantity: 100}, nil)
		repo.EXPECT().CreateExecution(ctx, gomock.Any()).Return(gorm.ErrDuplicatedKey)
		sqlMock.ExpectRollback()

		err := svc.RecordAssignmentExecution(ctx, in)

		assert.ErrorIs(t, err, techcarderrors.ErrExecutionAlreadyRecorded)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("links the execution to the assignment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := techcardMock.NewMockRepository(ctrl)
		db, sqlMock := newSQLMock(t)
		svc := techcard.NewService(db, repo, nil, 0)

		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().FindByID(ctx, cardID).Return(&techcard.TechCard{ID: cardID, Quantity: 100}, nil).Times(2)
		repo.EXPECT().CreateExecution(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *techcard.Execution) error {
			assert.Equal(t, in.AssignmentID, *e.AssignmentID)
			assert.Equal(t, in.OperatorID, e.ExecutedByID)
			assert.Equal(t, 12, e.QuantityProduced)
			return nil
		})
		repo.EXPECT().AddProduced(ctx, cardID, 12).Return(nil)
		repo.EXPECT().FindExecutions(ctx, cardID).Return(nil, nil)
		sqlMock.ExpectCommit()

		assert.NoError(t, svc.RecordAssignmentExecution(ctx, in))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown tech card", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := techcardMock.NewMockRepository(ctrl)
		db, sqlMock := newSQLMock(t)
		svc := techcard.NewService(db, repo, nil, 0)

		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().FindByID(ctx, cardID).Return(nil, gorm.ErrRecordNotFound)
		sqlMock.ExpectRollback()

		assert.ErrorIs(t, svc.RecordAssignmentExecution(ctx, in), techcarderrors.ErrTechCardNotFound)
	})
}

func TestService_AttachPDF(t *testing.T) {
	ctx := context.Background()
	cardID := uuid.New()
	pdf := func() techcard.Upload {
		return techcard.Upload{
			Filename:    "sheet.pdf",
			ContentType: "application/pdf",
			Size:        2048,
			Body:        strings.NewReader("%PDF-1.7"),
		}
	}

	t.Run("rejects non pdf", func(t *testing.T) {
		svc := techcard.NewService(nil, nil, nil, 1<<20)
		up := pdf()
		up.Filename = "sheet.docx"
		up.ContentType = "application/msword"

		_, err := svc.AttachPDF(ctx, cardID.String(), up)

		assert.ErrorIs(t, err, techcarderrors.ErrNotPDF)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		svc := techcard.NewService(nil, nil, nil, 1024)

		_, err := svc.AttachPDF(ctx, cardID.String(), pdf())

		assert.ErrorIs(t, err, techcarderrors.ErrFileTooLarge)
	})

	t.Run("replaces previous file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := techcardMock.NewMockRepository(ctrl)
		store := storageMock.NewMockStorage(ctrl)
		svc := techcard.NewService(nil, repo, store, 20<<20)

		existing := &techcard.TechCard{ID: cardID, Quantity: 5, PdfURL: "/uploads/techcards/old.pdf", PdfFileSize: 10}
		repo.EXPECT().FindByID(ctx, cardID).Return(existing, nil)
		store.EXPECT().Save(ctx, "techcards", "sheet.pdf", gomock.Any()).
			Return(storage.File{Name: "new.pdf", URL: "/uploads/techcards/new.pdf", Size: 2048}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *techcard.TechCard) error {
			assert.Equal(t, "/uploads/techcards/new.pdf", c.PdfURL)
			assert.Equal(t, int64(2048), c.PdfFileSize)
			return nil
		})
		store.EXPECT().Remove(ctx, "/uploads/techcards/old.pdf").Return(nil)
		repo.EXPECT().FindByID(ctx, cardID).Return(&techcard.TechCard{
			ID: cardID, Quantity: 5, PdfURL: "/uploads/techcards/new.pdf", PdfFileSize: 2048,
		}, nil)
		repo.EXPECT().FindExecutions(ctx, cardID).Return(nil, nil)

		resp, err := svc.AttachPDF(ctx, cardID.String(), pdf())

		assert.NoError(t, err)
		assert.Equal(t, "2.0 KB", resp.PdfFileSizeFormatted)
	})

	t.Run("cleans up stored file when update fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := techcardMock.NewMockRepository(ctrl)
		store := storageMock.NewMockStorage(ctrl)
		svc := techcard.NewService(nil, repo, store, 0)

		repo.EXPECT().FindByID(ctx, cardID).Return(&techcard.TechCard{ID: cardID}, nil)
		store.EXPECT().Save(ctx, "techcards", "sheet.pdf", gomock.Any()).
			Return(storage.File{URL: "/uploads/techcards/new.pdf", Size: 2048}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(assert.AnError)
		store.EXPECT().Remove(ctx, "/uploads/techcards/new.pdf").Return(nil)

		_, err := svc.AttachPDF(ctx, cardID.String(), pdf())

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestService_DetachPDF_WithoutFile(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := techcardMock.NewMockRepository(ctrl)
	svc := techcard.NewService(nil, repo, nil, 0)

	id := uuid.New()
	repo.EXPECT().FindByID(ctx, id).Return(&techcard.TechCard{ID: id}, nil)

	_, err := svc.DetachPDF(ctx, id.String())

	assert.ErrorIs(t, err, techcarderrors.ErrNoPDF)
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := techcardMock.NewMockRepository(ctrl)
	svc := techcard.NewService(nil, repo, nil, 0)

	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	future := time.Now().AddDate(1, 0, 0)
	repo.EXPECT().FindAll(ctx, techcard.ListFilter{}).Return([]techcard.TechCard{
		{ID: uuid.New(), Status: techcard.StatusActive, PlannedEndDate: &past},
		{ID: uuid.New(), Status: techcard.StatusActive, PlannedEndDate: &past, ActualEndDate: &past},
		{ID: uuid.New(), Status: techcard.StatusActive, PlannedEndDate: &future},
		{ID: uuid.New(), Status: techcard.StatusDraft, PlannedEndDate: &past},
	}, nil)

	stats, err := svc.Stats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.ByStatus[techcard.StatusActive])
	assert.Equal(t, 1, stats.ByStatus[techcard.StatusDraft])
	assert.Equal(t, 0, stats.ByStatus[techcard.StatusArchived])
	assert.Equal(t, 1, stats.Overdue)
}

func TestService_Create_PartNumberTaken(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := techcardMock.NewMockRepository(ctrl)
	svc := techcard.NewService(nil, repo, nil, 0)

	pn := " ВМ-12 "
	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *techcard.TechCard) error {
		assert.Equal(t, "ВМ-12", *c.PartNumber)
		return gorm.ErrDuplicatedKey
	})

	_, err := svc.Create(ctx, uuid.New(), techcard.CreateTechCardRequest{
		Customer: "A", Order: "B", ProductName: "C", Quantity: 1, PartNumber: &pn,
	})

	assert.ErrorIs(t, err, techcarderrors.ErrPartNumberTaken)
}

func TestService_Create_InvalidDate(t *testing.T) {
	svc := techcard.NewService(nil, nil, nil, 0)

	_, err := svc.Create(context.Background(), uuid.New(), techcard.CreateTechCardRequest{
		Customer: "A", Order: "B", ProductName: "C", Quantity: 1, PlannedEndDate: "someday",
	})

	assert.ErrorIs(t, err, techcarderrors.ErrInvalidDate)
}
