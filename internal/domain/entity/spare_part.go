package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SparePart is an inventory item
type SparePart struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PartName         string    `gorm:"size:255;not null" json:"part_name"`
	PartNumber       string    `gorm:"size:100;not null;index" json:"part_number"`
	QuantityInStock  int       `gorm:"default:0" json:"quantity_in_stock"`
	ReorderThreshold int       `gorm:"default:0" json:"reorder_threshold"`
	UnitPrice        float64   `gorm:"type:decimal(12,2);default:0" json:"unit_price"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new spare part
func (p *SparePart) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsLowStock checks if the part is at or below its reorder threshold
func (p *SparePart) IsLowStock() bool {
	return p.QuantityInStock <= p.ReorderThreshold
}
