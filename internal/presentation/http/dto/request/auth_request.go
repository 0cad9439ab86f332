package request

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SwitchTenantRequest selects the active database
type SwitchTenantRequest struct {
	DatabaseType string `json:"database_type" binding:"required"`
}
