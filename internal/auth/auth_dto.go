package auth

import "go-metallurg/internal/user"

type RegisterRequest struct {
	Username     string  `json:"username" binding:"required,min=3,max=100"`
	Password     string  `json:"password" binding:"required,min=6"`
	FirstName    string  `json:"firstName" binding:"required,max=100"`
	LastName     string  `json:"lastName" binding:"required,max=100"`
	Phone        string  `json:"phone" binding:"max=50"`
	DepartmentID *string `json:"departmentId" binding:"omitempty,uuid"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// Tokens is a freshly issued access/refresh pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type AuthResponse struct {
	User         user.UserResponse `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}
