package techcard

import (
	"go-metallurg/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	cards := r.Group("/techcards")
	cards.Use(auth)
	{
		cards.GET("",
			middleware.RBACAuthorize(rbacService, "techcard", "read"),
			handler.GetAll,
		)

		cards.GET("/stats",
			middleware.RBACAuthorize(rbacService, "techcard", "read"),
			handler.Stats,
		)

		cards.GET("/:id",
			middleware.RBACAuthorize(rbacService, "techcard", "read"),
			handler.GetById,
		)

		cards.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "techcard", "create"),
			handler.Create,
		)

		cards.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "techcard", "update"),
			handler.Update,
		)

		cards.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "techcard", "delete"),
			handler.Delete,
		)

		cards.POST("/:id/upload-pdf",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "techcard", "upload"),
			handler.UploadPDF,
		)

		cards.POST("/:id/upload-drawing",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "techcard", "upload"),
			handler.UploadDrawing,
		)

		cards.DELETE("/:id/pdf",
			middleware.RBACAuthorize(rbacService, "techcard", "upload"),
			handler.DeletePDF,
		)

		cards.POST("/:id/executions",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "techcard", "execute"),
			handler.CreateExecution,
		)

		cards.GET("/:id/executions",
			middleware.RBACAuthorize(rbacService, "techcard", "read"),
			handler.GetExecutions,
		)

		cards.POST("/:id/access",
			middleware.RBACAuthorize(rbacService, "techcard", "read"),
			handler.CreateAccess,
		)

		cards.GET("/:id/access",
			middleware.RBACAuthorize(rbacService, "techcard", "read"),
			handler.GetAccessLog,
		)
	}
}
