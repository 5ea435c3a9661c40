package department

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type MemberResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	FullName  string  `json:"fullName"`
	Role      string  `json:"role"`
	Phone     string  `json:"phone"`
	MasterID  *string `json:"masterId"`
}
