package rbac

import "go-metallurg/internal/domain"

type EnforceRequest = domain.EnforceRequest

type CheckRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionsResponse struct {
	Role        string       `json:"role"`
	Permissions []Permission `json:"permissions"`
}
