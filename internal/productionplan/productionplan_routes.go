package productionplan

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
	plans := r.Group("/production-plans")

	plans.Use(auth)

	{
		plans.GET("", middleware.RBACAuthorize(rbacService, "production_plan", "read"), h.GetAll)
		plans.POST("", middleware.RBACAuthorize(rbacService, "production_plan", "create"), h.Create)
		plans.GET("/:id", middleware.RBACAuthorize(rbacService, "production_plan", "read"), h.GetById)
		plans.PUT("/:id", middleware.RBACAuthorize(rbacService, "production_plan", "update"), h.Update)
		plans.DELETE("/:id", middleware.RBACAuthorize(rbacService, "production_plan", "delete"), h.Delete)
		plans.POST("/:id/progress",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "production_plan", "update"),
			h.AddProgress,
		)
	}
}
