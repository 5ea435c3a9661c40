package task_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-metallurg/internal/middleware"
	"go-metallurg/internal/task"
	taskerrors "go-metallurg/internal/task/errors"
	mock_task "go-metallurg/internal/task/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTaskHandler_Create(t *testing.T) {
	me := uuid.New()

	t.Run("author comes from the token", func(t *testing.T) {
		svc := mock_task.NewMockService(gomock.NewController(t))
		svc.EXPECT().
			Create(gomock.Any(), me, task.CreateTaskRequest{Title: "Проверить станок", Priority: task.PriorityHigh}).
			Return(task.TaskResponse{ID: uuid.New().String(), Title: "Проверить станок"}, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set(middleware.KeyUserID, me.String())
		c.Set(middleware.KeyRole, "master")
		c.Request = httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"Проверить станок","priority":"high"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		task.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc := mock_task.NewMockService(gomock.NewController(t))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set(middleware.KeyUserID, me.String())
		c.Set(middleware.KeyRole, "master")
		c.Request = httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"A","status":"later"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		task.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_GetAll(t *testing.T) {
	svc := mock_task.NewMockService(gomock.NewController(t))
	dept := uuid.New().String()
	svc.EXPECT().
		GetAll(gomock.Any(), task.ListFilter{Status: "pending", AssignedDepartmentID: dept}).
		Return([]task.TaskResponse{{ID: "1"}, {ID: "2"}}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/tasks?status=pending&assigned_department_id="+dept, nil)

	task.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestTaskHandler_Delete_NotFound(t *testing.T) {
	svc := mock_task.NewMockService(gomock.NewController(t))
	svc.EXPECT().Delete(gomock.Any(), "abc").Return(taskerrors.ErrTaskNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/tasks/abc", nil)

	task.NewHandler(svc).Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
