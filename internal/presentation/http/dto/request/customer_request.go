package request

// VehicleRequest is the vehicle captured alongside a new customer
type VehicleRequest struct {
	Make               string `json:"make" binding:"required,max=100"`
	Model              string `json:"model" binding:"required,max=100"`
	Year               int    `json:"year" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required,max=50"`
}

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string         `json:"name" binding:"required,max=255"`
	Email   *string        `json:"email" binding:"omitempty,email"`
	Phone   *string        `json:"phone" binding:"omitempty,max=50"`
	Address *string        `json:"address"`
	Vehicle VehicleRequest `json:"vehicle" binding:"required"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// ListQuery carries page-based pagination and a search term
type ListQuery struct {
	Search  string `form:"search"`
	Page    int    `form:"page" binding:"omitempty,min=1,max=100000"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}
