package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceType is a catalogue entry such as a full detail or a ceramic coat
type ServiceType struct {
	ID                     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name                   string    `gorm:"size:255;not null" json:"name"`
	Description            *string   `gorm:"type:text" json:"description,omitempty"`
	BasePrice              float64   `gorm:"type:decimal(12,2);default:0" json:"base_price"`
	EstimatedDurationHours *float64  `gorm:"type:decimal(6,2)" json:"estimated_duration_hours,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new service type
func (s *ServiceType) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Service is one job performed on a vehicle
type Service struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	VehicleID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	ServiceTypeID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"service_type_id"`
	ServiceDate     time.Time  `gorm:"type:date;not null;index" json:"service_date"`
	LaborCharges    float64    `gorm:"type:decimal(12,2);default:0" json:"labor_charges"`
	TotalCost       float64    `gorm:"type:decimal(12,2);default:0" json:"total_cost"`
	NextServiceDate *time.Time `gorm:"type:date;index" json:"next_service_date,omitempty"`
	Notes           *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ServicePart is a spare part consumed by a service
type ServicePart struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	SparePartID uuid.UUID `gorm:"type:uuid;not null;index" json:"spare_part_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(12,2);default:0" json:"unit_price"`
	Subtotal    float64   `gorm:"type:decimal(12,2);default:0" json:"subtotal"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new service part
func (s *ServicePart) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// PartRef is the slice of a spare part shown next to a line item
type PartRef struct {
	PartName   string `json:"part_name"`
	PartNumber string `json:"part_number"`
}

// ServicePartDetail is a service line item with its spare part resolved
type ServicePartDetail struct {
	ServicePart
	SparePart *PartRef `json:"spare_part"`
}

// ServiceWithDetails is a service with every relation the back office displays
type ServiceWithDetails struct {
	Service
	Vehicle      *VehicleWithCustomer `json:"vehicle"`
	ServiceType  *ServiceType         `json:"service_type"`
	ServiceParts []ServicePartDetail  `json:"service_parts"`
}

// CustomerName returns the owning customer's name, or "" when unresolved
func (s *ServiceWithDetails) CustomerName() string {
	if s.Vehicle == nil || s.Vehicle.Customer == nil {
		return ""
	}
	return s.Vehicle.Customer.Name
}

// ServiceTypeName returns the type name, or "" when unresolved
func (s *ServiceWithDetails) ServiceTypeName() string {
	if s.ServiceType == nil {
		return ""
	}
	return s.ServiceType.Name
}
