package middleware

import (
	autherrors "go-metallurg/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity is what the auth middleware learned about the caller.
type Identity struct {
	UserID       uuid.UUID
	Role         string
	DepartmentID *uuid.UUID
}

// CurrentUser reads the caller set by AuthMiddleware.
func CurrentUser(c *gin.Context) (Identity, error) {
	uid, err := uuid.Parse(c.GetString(KeyUserID))
	if err != nil {
		return Identity{}, autherrors.ErrInvalidToken
	}

	id := Identity{UserID: uid, Role: c.GetString(KeyRole)}
	if dept, err := uuid.Parse(c.GetString(KeyDepartmentID)); err == nil {
		id.DepartmentID = &dept
	}
	return id, nil
}
