package task

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
	tasks := r.Group("/tasks")

	tasks.Use(auth)

	{
		tasks.GET("", middleware.RBACAuthorize(rbacService, "task", "read"), h.GetAll)
		tasks.POST("", middleware.RBACAuthorize(rbacService, "task", "create"), h.Create)
		tasks.GET("/:id", middleware.RBACAuthorize(rbacService, "task", "read"), h.GetById)
		tasks.PUT("/:id", middleware.RBACAuthorize(rbacService, "task", "update"), h.Update)
		tasks.DELETE("/:id", middleware.RBACAuthorize(rbacService, "task", "delete"), h.Delete)
	}
}
