package rbac

import (
	"go-metallurg/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(auth)
	{
		group.POST("/check", handler.Check)
		group.GET("/permissions", handler.MyPermissions)
		group.GET("/roles/:role/permissions",
			middleware.RoleMiddleware(RoleAdmin, RoleDirector),
			handler.RolePermissions,
		)
	}
}
