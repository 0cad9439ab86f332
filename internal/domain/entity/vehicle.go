package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle belongs to exactly one customer
type Vehicle struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID         uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Make               string    `gorm:"size:100;not null" json:"make"`
	Model              string    `gorm:"size:100;not null" json:"model"`
	Year               int       `json:"year"`
	RegistrationNumber string    `gorm:"size:50;not null" json:"registration_number"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new vehicle
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VehicleWithCustomer is a vehicle with its owning customer resolved
type VehicleWithCustomer struct {
	Vehicle
	Customer *Customer `json:"customer"`
}
