package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubService struct{}

func (stubService) Enforce(req EnforceRequest) (bool, error) {
	return req.Role == RoleMaster && req.Resource == "techcard" && req.Action == "create", nil
}

func (stubService) PermissionsFor(role string) ([]Permission, error) {
	return []Permission{{Resource: "techcard", Action: "read"}}, nil
}

func TestHandler_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/check", func(c *gin.Context) {
		c.Set("role", RoleMaster)
		c.Next()
	}, NewHandler(stubService{}).Check)

	body, _ := json.Marshal(CheckRequest{Resource: "techcard", Action: "create"})
	req := httptest.NewRequest(http.MethodPost, "/rbac/check", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data EnforceResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Allowed)
}

func TestHandler_MyPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil)
	c.Set("role", RoleEmployee)

	NewHandler(stubService{}).MyPermissions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"employee"`)
}

func TestRoutes_RolePermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		RegisterRoutes(r.Group("/api"), NewHandler(stubService{}), func(c *gin.Context) {
			c.Set("role", role)
			c.Next()
		})
		return r
	}

	tests := []struct {
		name   string
		caller string
		target string
		want   int
	}{
		{"director reads master", RoleDirector, RoleMaster, http.StatusOK},
		{"admin reads employee", RoleAdmin, RoleEmployee, http.StatusOK},
		{"master is refused", RoleMaster, RoleEmployee, http.StatusForbidden},
		{"unknown role", RoleAdmin, "guest", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter(tt.caller).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rbac/roles/"+tt.target+"/permissions", nil))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
