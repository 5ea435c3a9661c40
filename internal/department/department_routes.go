package department

import (
	"go-metallurg/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	departments := r.Group("/departments")

	departments.Use(auth)

	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", "read"), h.GetAll)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", "create"), h.Create)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "department", "read"), h.GetById)
		departments.GET("/:id/users", middleware.RBACAuthorize(rbacService, "department", "read"), h.Members)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, "department", "update"), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "department", "delete"), h.Delete)
	}
}
