package assignment

import (
	"go-metallurg/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	assignments := r.Group("/assignments")
	assignments.Use(auth)
	{
		assignments.GET("",
			middleware.RBACAuthorize(rbacService, "assignment", "read"),
			h.GetAll,
		)

		assignments.GET("/my",
			middleware.RBACAuthorize(rbacService, "assignment", "read_own"),
			h.GetMine,
		)

		assignments.GET("/upload-excel/template",
			middleware.RBACAuthorize(rbacService, "assignment", "import"),
			h.DownloadTemplate,
		)

		assignments.POST("/upload-excel",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "assignment", "import"),
			middleware.Idempotency(rdb),
			h.UploadExcel,
		)

		assignments.GET("/:id",
			middleware.RBACAuthorize(rbacService, "assignment", "read"),
			h.GetById,
		)

		assignments.POST("",
			middleware.RBACAuthorize(rbacService, "assignment", "create"),
			h.Create,
		)

		assignments.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "assignment", "update"),
			h.Update,
		)

		assignments.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "assignment", "delete"),
			h.Delete,
		)

		assignments.POST("/:id/start",
			middleware.RBACAuthorize(rbacService, "assignment", "work"),
			h.Start,
		)

		assignments.POST("/:id/complete",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "assignment", "work"),
			h.Complete,
		)
	}
}
