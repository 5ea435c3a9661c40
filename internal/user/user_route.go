package user

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
	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "user", "read"),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "user", "read"),
			handler.GetById,
		)

		users.GET("/:id/subordinates",
			middleware.RBACAuthorize(rbacService, "user", "read"),
			handler.Subordinates,
		)

		users.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "user", "create"),
			handler.Create,
		)

		users.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "user", "update"),
			handler.Update,
		)

		users.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "user", "delete"),
			handler.Delete,
		)

		users.PUT("/:id/password",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "user", "update"),
			handler.ResetPassword,
		)
	}
}
