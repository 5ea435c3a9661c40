package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-metallurg/internal/auth"
	autherrors "go-metallurg/internal/auth/errors"
	authMock "go-metallurg/internal/auth/mock"
	"go-metallurg/internal/middleware"
	"go-metallurg/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter(t *testing.T) (*authMock.MockService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, auth.CookieOptions{AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour})

	router := gin.New()
	router.POST("/login", handler.Login)
	router.POST("/register", handler.Register)
	router.POST("/refresh", handler.RefreshToken)
	router.POST("/logout", handler.Logout)
	router.GET("/me", func(c *gin.Context) {
		c.Set(middleware.KeyUserID, "user-1")
		c.Next()
	}, handler.Me)
	return mockService, router
}

func postJSON(router *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Login(t *testing.T) {
	t.Run("web client gets cookies", func(t *testing.T) {
		mockService, router := setupAuthRouter(t)
		mockService.EXPECT().
			Login(gomock.Any(), "ivanov", "password123").
			Return(auth.Tokens{AccessToken: "access-token", RefreshToken: "refresh-token"}, user.UserResponse{Username: "ivanov"}, nil)

		w := postJSON(router, "/login", auth.LoginRequest{Username: "ivanov", Password: "password123"},
			map[string]string{"X-Client-Type": "WEB"})

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 2)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "access-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)

		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		data := res["data"].(map[string]any)
		assert.Equal(t, "access-token", data["accessToken"])
		assert.Equal(t, "ivanov", data["user"].(map[string]any)["username"])
	})

	t.Run("api client gets no cookies", func(t *testing.T) {
		mockService, router := setupAuthRouter(t)
		mockService.EXPECT().
			Login(gomock.Any(), "ivanov", "password123").
			Return(auth.Tokens{AccessToken: "a", RefreshToken: "r"}, user.UserResponse{}, nil)

		w := postJSON(router, "/login", auth.LoginRequest{Username: "ivanov", Password: "password123"},
			map[string]string{"X-Client-Type": "API"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockService, router := setupAuthRouter(t)
		mockService.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(auth.Tokens{}, user.UserResponse{}, autherrors.ErrInvalidCredentials)

		w := postJSON(router, "/login", auth.LoginRequest{Username: "ivanov", Password: "bad"}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		mockService, router := setupAuthRouter(t)
		mockService.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := postJSON(router, "/login", map[string]string{"username": "ivanov"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService, router := setupAuthRouter(t)
		mockService.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(user.UserResponse{Username: "new.operator", Role: user.RoleEmployee}, nil)

		w := postJSON(router, "/register", auth.RegisterRequest{
			Username: "new.operator", Password: "secret123", FirstName: "Анна", LastName: "Смирнова",
		}, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("username taken", func(t *testing.T) {
		mockService, router := setupAuthRouter(t)
		mockService.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(user.UserResponse{}, autherrors.ErrUsernameTaken)

		w := postJSON(router, "/register", auth.RegisterRequest{
			Username: "taken", Password: "secret123", FirstName: "A", LastName: "B",
		}, nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_RefreshToken(t *testing.T) {
	t.Run("body token for api clients", func(t *testing.T) {
		mockService, router := setupAuthRouter(t)
		mockService.EXPECT().
			RefreshToken(gomock.Any(), "old-refresh").
			Return(auth.Tokens{AccessToken: "a2", RefreshToken: "r2"}, user.UserResponse{}, nil)

		w := postJSON(router, "/refresh", auth.RefreshRequest{RefreshToken: "old-refresh"}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		_, router := setupAuthRouter(t)

		w := postJSON(router, "/refresh", map[string]string{}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_LogoutAndMe(t *testing.T) {
	mockService, router := setupAuthRouter(t)

	w := postJSON(router, "/logout", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.Equal(t, -1, c.MaxAge)
	}

	mockService.EXPECT().GetMe(gomock.Any(), "user-1").Return(user.UserResponse{ID: "user-1"}, nil)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
