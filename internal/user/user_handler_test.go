package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-metallurg/internal/user"
	usererrors "go-metallurg/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	GetAllFn          func(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error)
	GetByIDFn         func(ctx context.Context, id string) (user.UserResponse, error)
	GetSubordinatesFn func(ctx context.Context, id string) ([]user.UserResponse, error)
	CreateFn          func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	UpdateFn          func(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error)
	DeleteFn          func(ctx context.Context, id string) error
	ResetPasswordFn   func(ctx context.Context, id, newPassword string) error
}

func (f *fakeUserService) GetAll(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeUserService) GetSubordinates(ctx context.Context, id string) ([]user.UserResponse, error) {
	return f.GetSubordinatesFn(ctx, id)
}
func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeUserService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeUserService) ResetPassword(ctx context.Context, id, newPassword string) error {
	return f.ResetPasswordFn(ctx, id, newPassword)
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestUserHandler_GetAll_PassesFilters(t *testing.T) {
	svc := &fakeUserService{
		GetAllFn: func(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error) {
			assert.Equal(t, "master", filter.Role)
			assert.Equal(t, "d-1", filter.DepartmentID)
			assert.Equal(t, "ivan", filter.Query)
			return []user.UserResponse{{Username: "ivanov"}}, nil
		},
	}

	c, w := newContext(http.MethodGet, "/users?role=master&department_id=d-1&q=ivan", "")
	user.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("invalid role", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/users",
			`{"username":"abc","password":"secret1","firstName":"A","lastName":"B","role":"boss"}`)

		user.NewHandler(&fakeUserService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc := &fakeUserService{
			CreateFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrUsernameTaken
			},
		}
		c, w := newContext(http.MethodPost, "/users",
			`{"username":"abc","password":"secret1","firstName":"A","lastName":"B","role":"master"}`)

		user.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestUserHandler_ResetPassword(t *testing.T) {
	called := false
	svc := &fakeUserService{
		ResetPasswordFn: func(ctx context.Context, id, newPassword string) error {
			called = true
			assert.Equal(t, "u-1", id)
			assert.Equal(t, "fresh-pass", newPassword)
			return nil
		},
	}

	c, w := newContext(http.MethodPut, "/users/u-1/password", `{"newPassword":"fresh-pass"}`)
	c.Params = []gin.Param{{Key: "id", Value: "u-1"}}

	user.NewHandler(svc).ResetPassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestUserHandler_Subordinates(t *testing.T) {
	svc := &fakeUserService{
		GetSubordinatesFn: func(ctx context.Context, id string) ([]user.UserResponse, error) {
			return nil, usererrors.ErrUserNotFound
		},
	}

	c, w := newContext(http.MethodGet, "/users/x/subordinates", "")
	user.NewHandler(svc).Subordinates(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
