package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale is an over-the-counter parts sale.
// CustomerName is free text and does not reference a Customer row.
type Sale struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerName  string    `gorm:"size:255;not null" json:"customer_name"`
	InvoiceNumber string    `gorm:"size:100;not null;index" json:"invoice_number"`
	SaleDate      time.Time `gorm:"type:date;not null;index" json:"sale_date"`
	TotalAmount   float64   `gorm:"type:decimal(12,2);default:0" json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SaleItem is one line of a sale
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	SparePartID uuid.UUID `gorm:"type:uuid;not null;index" json:"spare_part_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(12,2);default:0" json:"unit_price"`
	Subtotal    float64   `gorm:"type:decimal(12,2);default:0" json:"subtotal"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// SaleItemDetail is a sale line with its spare part resolved
type SaleItemDetail struct {
	SaleItem
	SparePart *PartRef `json:"spare_part"`
}

// SaleWithItems is a sale and its lines
type SaleWithItems struct {
	Sale
	Items []SaleItemDetail `json:"items"`
}
