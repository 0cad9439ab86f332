package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShowroomCar is a vehicle advertised on the public site
type ShowroomCar struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Make        string    `gorm:"size:100;not null" json:"make"`
	Model       string    `gorm:"size:100;not null" json:"model"`
	Year        int       `json:"year"`
	Price       float64   `gorm:"type:decimal(14,2);default:0" json:"price"`
	ImageURL    string    `gorm:"type:text" json:"image_url"`
	Description string    `gorm:"type:text" json:"description"`
	Engine      string    `gorm:"size:100" json:"engine"`
	Power       string    `gorm:"size:100" json:"power"`
	Weight      string    `gorm:"size:100" json:"weight"`
	TopSpeed    string    `gorm:"size:100" json:"top_speed"`
	IsFeatured  bool      `gorm:"default:false;index" json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new car
func (c *ShowroomCar) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DisplayName is the "make model" label used on the site and in inquiries
func (c *ShowroomCar) DisplayName() string {
	return c.Make + " " + c.Model
}

// ShowroomCarImage is an extra gallery image of a car
type ShowroomCarImage struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CarID        uuid.UUID `gorm:"type:uuid;not null;index" json:"car_id"`
	ImageURL     string    `gorm:"type:text;not null" json:"image_url"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new image
func (i *ShowroomCarImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ShowroomCarWithImages is a car with its gallery ordered by display order
type ShowroomCarWithImages struct {
	ShowroomCar
	Images []ShowroomCarImage `json:"images"`
}
