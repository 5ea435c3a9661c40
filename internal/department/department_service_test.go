package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-metallurg/internal/department"
	departmenterrors "go-metallurg/internal/department/errors"
	"go-metallurg/internal/department/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	svc      department.Service
	repo     *mock.MockRepository
	sqlMock  sqlmock.Sqlmock
	redisMck redismock.ClientMock
	db       *sql.DB
}

func newServiceDeps(t *testing.T) serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	repo := mock.NewMockRepository(ctrl)

	return serviceDeps{
		svc:      department.NewService(db, repo, rdb),
		repo:     repo,
		sqlMock:  sqlMock,
		redisMck: redisMock,
		db:       db,
	}
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates cache", func(t *testing.T) {
		d := newServiceDeps(t)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, dept *department.Department) error {
			assert.Equal(t, "Механический цех", dept.Name)
			assert.NotEqual(t, uuid.Nil, dept.ID)
			return nil
		})
		d.sqlMock.ExpectCommit()
		d.redisMck.ExpectDel(department.DepartmentAllKey).SetVal(1)

		resp, err := d.svc.Create(ctx, department.CreateDepartmentRequest{Name: "  Механический цех "})

		assert.NoError(t, err)
		assert.Equal(t, "Механический цех", resp.Name)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
		assert.NoError(t, d.redisMck.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		d := newServiceDeps(t)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Create(ctx, gomock.Any()).Return(gorm.ErrDuplicatedKey)
		d.sqlMock.ExpectRollback()

		_, err := d.svc.Create(ctx, department.CreateDepartmentRequest{Name: "ОТК"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips repository", func(t *testing.T) {
		d := newServiceDeps(t)

		cached, _ := json.Marshal([]department.DepartmentResponse{{ID: "1", Name: "ОТК"}})
		d.redisMck.ExpectGet(department.DepartmentAllKey).SetVal(string(cached))

		resp, err := d.svc.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "ОТК", resp[0].Name)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		d := newServiceDeps(t)
		id := uuid.New()
		depts := []department.Department{{ID: id, Name: "Сборочный цех"}}

		expected, _ := json.Marshal([]department.DepartmentResponse{{ID: id.String(), Name: "Сборочный цех"}})

		d.redisMck.ExpectGet(department.DepartmentAllKey).RedisNil()
		d.repo.EXPECT().FindAll(gomock.Any()).Return(depts, nil)
		d.redisMck.ExpectSet(department.DepartmentAllKey, expected, 30*time.Minute).SetVal("OK")

		resp, err := d.svc.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.NoError(t, d.redisMck.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		d := newServiceDeps(t)

		d.redisMck.ExpectGet(department.DepartmentAllKey).RedisNil()
		d.repo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("db down"))

		resp, err := d.svc.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		d := newServiceDeps(t)

		_, err := d.svc.GetByID(ctx, "nope")

		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})

	t.Run("not found", func(t *testing.T) {
		d := newServiceDeps(t)
		id := uuid.New()
		d.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.GetByID(ctx, id.String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		d := newServiceDeps(t)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Delete(ctx, id).Return(nil)
		d.sqlMock.ExpectCommit()
		d.redisMck.ExpectDel(department.DepartmentAllKey).SetVal(1)

		err := d.svc.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("department in use", func(t *testing.T) {
		d := newServiceDeps(t)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().Delete(ctx, id).Return(gorm.ErrForeignKeyViolated)
		d.sqlMock.ExpectRollback()

		err := d.svc.Delete(ctx, id.String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)
	})
}

func TestDepartmentService_GetMembers(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	master := uuid.New()

	d := newServiceDeps(t)
	d.repo.EXPECT().FindByID(ctx, id).Return(&department.Department{ID: id, Name: "ОТК"}, nil)
	d.repo.EXPECT().FindMembers(ctx, id).Return([]department.Member{
		{ID: uuid.New(), Username: "petrov", FirstName: "Пётр", LastName: "Петров", Role: "employee", MasterID: &master},
	}, nil)

	resp, err := d.svc.GetMembers(ctx, id.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Пётр Петров", resp[0].FullName)
	if assert.NotNil(t, resp[0].MasterID) {
		assert.Equal(t, master.String(), *resp[0].MasterID)
	}
}
