package productionplan_test

import (
	"context"
	"testing"

	"go-metallurg/internal/productionplan"
	productionplanerrors "go-metallurg/internal/productionplan/errors"
	mock_plan "go-metallurg/internal/productionplan/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*mock_plan.MockRepository, sqlmock.Sqlmock, productionplan.Service) {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := mock_plan.NewMockRepository(ctrl)
	return repo, sqlMock, productionplan.NewService(db, repo)
}

func TestPlanService_Create_DerivesProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		completed int
		status    string
		percent   int
		want      string
	}{
		{"nothing done", 0, "", 0, productionplan.StatusPlanned},
		{"partly done", 25, "", 25, productionplan.StatusInProgress},
		{"done", 100, "", 100, productionplan.StatusCompleted},
		{"over-fulfilled", 130, "", 130, productionplan.StatusCompleted},
		{"cancelled stays cancelled", 50, productionplan.StatusCancelled, 50, productionplan.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := setup(t)
			repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

			res, err := svc.Create(ctx, productionplan.CreatePlanRequest{
				CustomerName:      "Уралмаш",
				OrderName:         "З-101",
				Quantity:          100,
				CompletedQuantity: tt.completed,
				Status:            tt.status,
				Deadline:          "2026-12-01",
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.percent, res.ProgressPercent)
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, productionplan.PriorityMedium, res.Priority)
			assert.Equal(t, "2026-12-01", *res.Deadline)
		})
	}
}

func TestPlanService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	_, _, svc := setup(t)

	_, err := svc.Create(ctx, productionplan.CreatePlanRequest{CustomerName: "A", OrderName: "B", Quantity: 1, Deadline: "tomorrow"})
	assert.ErrorIs(t, err, productionplanerrors.ErrInvalidDeadline)

	bad := "not-a-uuid"
	_, err = svc.Create(ctx, productionplan.CreatePlanRequest{CustomerName: "A", OrderName: "B", Quantity: 1, TechCardID: &bad})
	assert.ErrorIs(t, err, productionplanerrors.ErrInvalidTechCard)
}

func TestPlanService_AddProgress(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("increments then recomputes in one transaction", func(t *testing.T) {
		repo, sqlMock, svc := setup(t)

		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		gomock.InOrder(
			repo.EXPECT().AddCompleted(ctx, id, 30).Return(nil),
			repo.EXPECT().FindByIDForUpdate(ctx, id).Return(&productionplan.ProductionPlan{
				ID: id, Quantity: 200, CompletedQuantity: 70, Status: productionplan.StatusInProgress,
			}, nil),
			repo.EXPECT().SaveProgress(ctx, id, 35, productionplan.StatusInProgress).Return(nil),
			repo.EXPECT().FindByID(ctx, id).Return(&productionplan.ProductionPlan{
				ID: id, Quantity: 200, CompletedQuantity: 70, ProgressPercent: 35, Status: productionplan.StatusInProgress,
			}, nil),
		)
		sqlMock.ExpectCommit()

		res, err := svc.AddProgress(ctx, id.String(), 30)

		assert.NoError(t, err)
		assert.Equal(t, 70, res.CompletedQuantity)
		assert.Equal(t, 35, res.ProgressPercent)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("reaching the target completes the plan", func(t *testing.T) {
		repo, sqlMock, svc := setup(t)

		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().AddCompleted(ctx, id, 10).Return(nil)
		repo.EXPECT().FindByIDForUpdate(ctx, id).Return(&productionplan.ProductionPlan{
			ID: id, Quantity: 50, CompletedQuantity: 50, Status: productionplan.StatusInProgress,
		}, nil)
		repo.EXPECT().SaveProgress(ctx, id, 100, productionplan.StatusCompleted).Return(nil)
		repo.EXPECT().FindByID(ctx, id).Return(&productionplan.ProductionPlan{
			ID: id, Quantity: 50, CompletedQuantity: 50, ProgressPercent: 100, Status: productionplan.StatusCompleted,
		}, nil)
		sqlMock.ExpectCommit()

		res, err := svc.AddProgress(ctx, id.String(), 10)

		assert.NoError(t, err)
		assert.Equal(t, productionplan.StatusCompleted, res.Status)
	})

	t.Run("missing plan rolls back", func(t *testing.T) {
		repo, sqlMock, svc := setup(t)

		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().AddCompleted(ctx, id, 5).Return(gorm.ErrRecordNotFound)
		sqlMock.ExpectRollback()

		_, err := svc.AddProgress(ctx, id.String(), 5)

		assert.ErrorIs(t, err, productionplanerrors.ErrPlanNotFound)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		_, _, svc := setup(t)

		_, err := svc.AddProgress(ctx, "x", 5)

		assert.ErrorIs(t, err, productionplanerrors.ErrInvalidPlanID)
	})
}

func TestPlanService_Update_RecomputesOnQuantityChange(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo, sqlMock, svc := setup(t)

	sqlMock.ExpectBegin()
	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	gomock.InOrder(
		repo.EXPECT().FindByIDForUpdate(ctx, id).Return(&productionplan.ProductionPlan{
			ID: id, Quantity: 100, CompletedQuantity: 50, ProgressPercent: 50, Status: productionplan.StatusInProgress,
		}, nil),
		repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *productionplan.ProductionPlan) error {
			assert.Equal(t, 100, p.ProgressPercent)
			assert.Equal(t, productionplan.StatusCompleted, p.Status)
			return nil
		}),
		repo.EXPECT().FindByID(ctx, id).Return(&productionplan.ProductionPlan{
			ID: id, Quantity: 50, CompletedQuantity: 50, ProgressPercent: 100, Status: productionplan.StatusCompleted,
		}, nil),
	)
	sqlMock.ExpectCommit()

	quantity := 50
	res, err := svc.Update(ctx, id.String(), productionplan.UpdatePlanRequest{Quantity: &quantity})

	assert.NoError(t, err)
	assert.Equal(t, 100, res.ProgressPercent)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPlanService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo, _, svc := setup(t)
	repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(ctx, id.String())

	assert.ErrorIs(t, err, productionplanerrors.ErrPlanNotFound)
}
