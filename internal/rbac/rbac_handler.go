package rbac

import (
	"net/http"

	"go-metallurg/internal/shared/apperror"
	"go-metallurg/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Check answers whether the caller's role may perform an action. The UI uses
// it to hide controls instead of reasoning about roles itself.
func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	allowed, err := h.service.Enforce(EnforceRequest{
		Role:     c.GetString("role"),
		Resource: req.Resource,
		Action:   req.Action,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString("role")
	perms, err := h.service.PermissionsFor(role)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{Role: role, Permissions: perms}, nil)
}

// RolePermissions lists what another role may do. Admins and directors use it
// when deciding which role to hand out.
func (h *Handler) RolePermissions(c *gin.Context) {
	role := c.Param("role")
	if !IsValidRole(role) {
		writeError(c, apperror.ErrNotFound)
		return
	}

	perms, err := h.service.PermissionsFor(role)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{Role: role, Permissions: perms}, nil)
}
