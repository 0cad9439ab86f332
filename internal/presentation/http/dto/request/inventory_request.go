package request

import "github.com/google/uuid"

// SparePartRequest creates or replaces a spare part
type SparePartRequest struct {
	PartName         string  `json:"part_name" binding:"required,max=255"`
	PartNumber       string  `json:"part_number" binding:"required,max=100"`
	QuantityInStock  int     `json:"quantity_in_stock" binding:"min=0"`
	ReorderThreshold int     `json:"reorder_threshold" binding:"min=0"`
	UnitPrice        float64 `json:"unit_price" binding:"min=0"`
}

// AdjustStockRequest adds (or with a negative delta removes) stock
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// SaleItemRequest is one line of a sale
type SaleItemRequest struct {
	SparePartID uuid.UUID `json:"spare_part_id" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64   `json:"unit_price" binding:"min=0"`
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	CustomerName  string            `json:"customer_name" binding:"required,max=255"`
	InvoiceNumber string            `json:"invoice_number" binding:"omitempty,max=100"`
	SaleDate      string            `json:"sale_date"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale listing filters
type SaleFilterRequest struct {
	From    string `form:"from"`
	To      string `form:"to"`
	Search  string `form:"search"`
	OrderBy string `form:"order_by"`
	Limit   int    `form:"limit"`
}
