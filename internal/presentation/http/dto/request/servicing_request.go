package request

import "github.com/google/uuid"

// ServiceTypeRequest creates or replaces a service type
type ServiceTypeRequest struct {
	Name                   string   `json:"name" binding:"required,max=255"`
	Description            *string  `json:"description"`
	BasePrice              float64  `json:"base_price" binding:"min=0"`
	EstimatedDurationHours *float64 `json:"estimated_duration_hours" binding:"omitempty,min=0"`
}

// ServicePartRequest is one spare part consumed by a service
type ServicePartRequest struct {
	SparePartID uuid.UUID `json:"spare_part_id" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64   `json:"unit_price" binding:"min=0"`
}

// CreateServiceRequest represents a service record creation request
type CreateServiceRequest struct {
	VehicleID       uuid.UUID            `json:"vehicle_id" binding:"required"`
	ServiceTypeID   uuid.UUID            `json:"service_type_id" binding:"required"`
	ServiceDate     string               `json:"service_date" binding:"required"`
	LaborCharges    float64              `json:"labor_charges" binding:"min=0"`
	TotalCost       *float64             `json:"total_cost" binding:"omitempty,min=0"`
	NextServiceDate *string              `json:"next_service_date"`
	Notes           *string              `json:"notes"`
	Parts           []ServicePartRequest `json:"parts" binding:"omitempty,dive"`
}

// ServiceFilterRequest represents service listing filters
type ServiceFilterRequest struct {
	From            string `form:"from"`
	To              string `form:"to"`
	NextServiceFrom string `form:"next_service_from"`
	NextServiceTo   string `form:"next_service_to"`
	OrderBy         string `form:"order_by"`
	Limit           int    `form:"limit"`
}
