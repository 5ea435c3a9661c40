package user

type CreateUserRequest struct {
	Username     string  `json:"username" binding:"required,min=3,max=100"`
	Password     string  `json:"password" binding:"required,min=6"`
	FirstName    string  `json:"firstName" binding:"required,max=100"`
	LastName     string  `json:"lastName" binding:"required,max=100"`
	Role         string  `json:"role" binding:"omitempty,oneof=employee master director admin"`
	Phone        string  `json:"phone" binding:"max=50"`
	DepartmentID *string `json:"departmentId" binding:"omitempty,uuid"`
	MasterID     *string `json:"masterId" binding:"omitempty,uuid"`
}

// UpdateUserRequest only touches the fields that are sent. An empty string
// for departmentId or masterId clears the link.
type UpdateUserRequest struct {
	FirstName    *string `json:"firstName" binding:"omitempty,max=100"`
	LastName     *string `json:"lastName" binding:"omitempty,max=100"`
	Role         *string `json:"role" binding:"omitempty,oneof=employee master director admin"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	DepartmentID *string `json:"departmentId"`
	MasterID     *string `json:"masterId"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type ListFilter struct {
	Role         string
	DepartmentID string
	Query        string
}

type UserResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	FullName       string  `json:"fullName"`
	Role           string  `json:"role"`
	Phone          string  `json:"phone"`
	DepartmentID   *string `json:"departmentId"`
	DepartmentName string  `json:"departmentName,omitempty"`
	MasterID       *string `json:"masterId"`
	MasterName     string  `json:"masterName,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}
