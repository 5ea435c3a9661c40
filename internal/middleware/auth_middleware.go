package middleware

import (
	"errors"
	autherrors "go-metallurg/internal/auth/errors"
	"go-metallurg/internal/shared/apperror"
	"go-metallurg/internal/shared/contextutil"
	"go-metallurg/internal/shared/response"
	"go-metallurg/internal/shared/token"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	KeyUserID       = "user_id"
	KeyRole         = "role"
	KeyDepartmentID = "department_id"
)

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

// AuthMiddleware accepts a bearer token or the access_token cookie set for
// web clients.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenMissing)
			return
		}

		claims, err := token.Parse(secret, tokenString, token.TypeAccess)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				abortWith(c, autherrors.ErrTokenExpired)
				return
			}
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyRole, claims.Role)
		c.Set(KeyDepartmentID, claims.DepartmentID)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, claims.UserID)
		ctx = contextutil.WithRole(ctx, claims.Role)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", claims.UserID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(KeyRole)
		if !exists {
			abortWith(c, autherrors.ErrForbidden)
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abortWith(c, autherrors.ErrForbidden)
	}
}
