package task

type CreateTaskRequest struct {
	Title                string  `json:"title" binding:"required,max=255"`
	Description          string  `json:"description"`
	Status               string  `json:"status" binding:"omitempty,oneof=pending in_progress done cancelled"`
	Priority             string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedDepartmentID *string `json:"assignedDepartmentId" binding:"omitempty,uuid"`
	AssignedUserID       *string `json:"assignedUserId" binding:"omitempty,uuid"`
	DueDate              string  `json:"dueDate"`
}

// UpdateTaskRequest leaves nil fields untouched. An empty string on an id
// field clears the assignment.
type UpdateTaskRequest struct {
	Title                *string `json:"title" binding:"omitempty,max=255"`
	Description          *string `json:"description"`
	Status               *string `json:"status" binding:"omitempty,oneof=pending in_progress done cancelled"`
	Priority             *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedDepartmentID *string `json:"assignedDepartmentId"`
	AssignedUserID       *string `json:"assignedUserId"`
	DueDate              *string `json:"dueDate"`
}

type ListFilter struct {
	Status               string
	AssignedUserID       string
	AssignedDepartmentID string
}

type TaskResponse struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Status               string  `json:"status"`
	Priority             string  `json:"priority"`
	AssignedDepartmentID *string `json:"assignedDepartmentId"`
	AssignedDepartment   string  `json:"assignedDepartment,omitempty"`
	AssignedUserID       *string `json:"assignedUserId"`
	AssignedUserName     string  `json:"assignedUserName,omitempty"`
	DueDate              *string `json:"dueDate"`
	Overdue              bool    `json:"overdue"`
	CompletedAt          *string `json:"completedAt"`
	CreatedByID          string  `json:"createdById"`
	CreatedByName        string  `json:"createdByName,omitempty"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}
