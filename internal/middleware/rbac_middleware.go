package middleware

import (
	"go-metallurg/internal/domain"
	"go-metallurg/internal/shared/apperror"
	"go-metallurg/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RBACService is any authorizer answering domain.EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(KeyRole)
		if role == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action, "role": role},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
