package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-metallurg/internal/domain"
	"go-metallurg/internal/middleware"
	"go-metallurg/internal/shared/token"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const secret = "middleware-secret"

type fakeRBAC struct {
	allowed bool
	got     domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func issue(t *testing.T, typ string, ttl time.Duration) string {
	raw, err := token.Issue(secret, token.Claims{
		UserID: uuid.NewString(),
		Role:   "master",
		Type:   typ,
	}, ttl)
	assert.NoError(t, err)
	return raw
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	r.GET("/me", middleware.AuthMiddleware(secret), func(c *gin.Context) {
		id, err := middleware.CurrentUser(c)
		assert.NoError(t, err)
		c.String(http.StatusOK, id.Role)
	})

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, token.TypeAccess, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "master", w.Body.String())
	})

	t.Run("cookie token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: issue(t, token.TypeAccess, time.Hour)})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, token.TypeAccess, -time.Minute))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, w))
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, token.TypeRefresh, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", errorCode(t, w))
	})
}

func TestRBACAuthorize(t *testing.T) {
	withRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(middleware.KeyRole, role)
			c.Next()
		}
	}
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBAC{allowed: true}
		r := newRouter()
		r.POST("/x", withRole("master"), middleware.RBACAuthorize(svc, "techcard", "create"), ok)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.EnforceRequest{Role: "master", Resource: "techcard", Action: "create"}, svc.got)
	})

	t.Run("denied", func(t *testing.T) {
		r := newRouter()
		r.POST("/x", withRole("employee"), middleware.RBACAuthorize(&fakeRBAC{}, "techcard", "create"), ok)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "techcard:create")
	})

	t.Run("no role", func(t *testing.T) {
		r := newRouter()
		r.POST("/x", middleware.RBACAuthorize(&fakeRBAC{allowed: true}, "techcard", "create"), ok)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(middleware.KeyRole, "master")
		c.Next()
	}, middleware.RoleMiddleware("admin", "director"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimitByIP(t *testing.T) {
	r := newRouter()
	r.POST("/login", middleware.RateLimitByIP(0.001, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/login", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), `"code":"TOO_MANY_REQUESTS"`)
}

func TestRequestID(t *testing.T) {
	r := newRouter()
	r.GET("/ping", middleware.RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.KeyRequestID))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestIdempotency(t *testing.T) {
	t.Run("replays stored response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("idemp:/upload::key-1").SetVal(`{"status":201,"body":{"ok":true}}`)

		called := false
		r := newRouter()
		r.POST("/upload", middleware.Idempotency(rdb), func(c *gin.Context) {
			called = true
			c.Status(http.StatusCreated)
		})

		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("idemp:/upload::key-2").RedisNil()
		mock.ExpectSetNX("idemp:/upload::key-2:lock", "locked", 2*time.Minute).SetVal(false)

		r := newRouter()
		r.POST("/upload", middleware.Idempotency(rdb), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		req.Header.Set("Idempotency-Key", "key-2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("no key passes through", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		r := newRouter()
		r.POST("/upload", middleware.Idempotency(rdb), func(c *gin.Context) {
			c.Status(http.StatusAccepted)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", nil))

		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}
