package productionplan

type CreatePlanRequest struct {
	CustomerName      string  `json:"customerName" binding:"required,max=255"`
	OrderName         string  `json:"orderName" binding:"required,max=255"`
	Quantity          int     `json:"quantity" binding:"required,gt=0"`
	CompletedQuantity int     `json:"completedQuantity" binding:"gte=0"`
	Deadline          string  `json:"deadline"`
	Status            string  `json:"status" binding:"omitempty,oneof=planned in_progress completed cancelled"`
	TechCardID        *string `json:"techCardId" binding:"omitempty,uuid"`
	Priority          string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Notes             string  `json:"notes"`
}

type UpdatePlanRequest struct {
	CustomerName *string `json:"customerName" binding:"omitempty,max=255"`
	OrderName    *string `json:"orderName" binding:"omitempty,max=255"`
	Quantity     *int    `json:"quantity" binding:"omitempty,gt=0"`
	Deadline     *string `json:"deadline"`
	Status       *string `json:"status" binding:"omitempty,oneof=planned in_progress completed cancelled"`
	TechCardID   *string `json:"techCardId" binding:"omitempty"`
	Priority     *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Notes        *string `json:"notes"`
}

type ProgressRequest struct {
	Delta int `json:"delta" binding:"required,ne=0"`
}

type ListFilter struct {
	Status     string
	Priority   string
	TechCardID string
	Query      string
}

type PlanResponse struct {
	ID                string  `json:"id"`
	CustomerName      string  `json:"customerName"`
	OrderName         string  `json:"orderName"`
	Quantity          int     `json:"quantity"`
	CompletedQuantity int     `json:"completedQuantity"`
	ProgressPercent   int     `json:"progressPercent"`
	Deadline          *string `json:"deadline"`
	Status            string  `json:"status"`
	TechCardID        *string `json:"techCardId"`
	TechCardProduct   string  `json:"techCardProduct,omitempty"`
	Priority          string  `json:"priority"`
	Notes             string  `json:"notes"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}
