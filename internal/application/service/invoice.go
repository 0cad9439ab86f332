package service

import (
	"math"
	"time"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/enum"
)

// LaborDescription describes the labor line of a service invoice
const LaborDescription = "Additional labor and diagnostics"

// InvoiceItem is one invoice line
type InvoiceItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Amount is quantity times price
func (i InvoiceItem) Amount() float64 {
	return i.Quantity * i.Price
}

// Discount is an invoice level discount. Value is a percentage of the
// subtotal for percent discounts and an absolute amount otherwise.
type Discount struct {
	Type  enum.DiscountType `json:"type"`
	Value float64           `json:"value"`
}

// Invoice holds the computed totals of a bill
type Invoice struct {
	Number         string            `json:"number"`
	Date           time.Time         `json:"date"`
	CustomerName   string            `json:"customer_name"`
	Items          []InvoiceItem     `json:"items"`
	Subtotal       float64           `json:"subtotal"`
	TaxPercent     float64           `json:"tax_percent"`
	TaxAmount      float64           `json:"tax_amount"`
	DiscountType   enum.DiscountType `json:"discount_type"`
	DiscountValue  float64           `json:"discount_value"`
	DiscountAmount float64           `json:"discount_amount"`
	GrandTotal     float64           `json:"grand_total"`
}

// Compute totals the items. The grand total never goes below zero.
func Compute(items []InvoiceItem, taxPercent float64, discount Discount) *Invoice {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Amount()
	}

	tax := subtotal * taxPercent / 100
	amount := discountAmount(subtotal, discount)

	return &Invoice{
		Items:          items,
		Subtotal:       subtotal,
		TaxPercent:     taxPercent,
		TaxAmount:      tax,
		DiscountType:   discount.Type,
		DiscountValue:  discount.Value,
		DiscountAmount: amount,
		GrandTotal:     math.Max(0, subtotal+tax-amount),
	}
}

func discountAmount(base float64, d Discount) float64 {
	if d.Value <= 0 {
		return 0
	}
	if d.Type == enum.DiscountTypePercent {
		return base * d.Value / 100
	}
	return d.Value
}

// ServiceInvoice bills a service: the type's base price, labor and every
// part used. A discount already baked into the stored total cost takes
// precedence over the requested one.
func ServiceInvoice(s *entity.ServiceWithDetails, requested Discount) *Invoice {
	items := make([]InvoiceItem, 0, len(s.ServiceParts)+2)

	typeName, basePrice := UnknownServiceType, 0.0
	if s.ServiceType != nil {
		typeName, basePrice = s.ServiceType.Name, s.ServiceType.BasePrice
	}
	items = append(items,
		InvoiceItem{Name: typeName, Description: "Base service charge", Quantity: 1, Price: basePrice},
		InvoiceItem{Name: "Labor Charges", Description: LaborDescription, Quantity: 1, Price: s.LaborCharges},
	)
	for _, p := range s.ServiceParts {
		item := InvoiceItem{Quantity: float64(p.Quantity), Price: p.UnitPrice}
		if p.SparePart != nil {
			item.Name, item.Description = p.SparePart.PartName, p.SparePart.PartNumber
		}
		items = append(items, item)
	}

	var subtotal float64
	for _, it := range items {
		subtotal += it.Amount()
	}

	discount := requested
	if stored := math.Max(0, subtotal-s.TotalCost); stored > 0 {
		discount = Discount{Type: enum.DiscountTypeFlat, Value: stored}
	}

	inv := Compute(items, 0, discount)
	inv.Number = "SRV-" + shortID(s.ID.String())
	inv.Date = s.ServiceDate
	inv.CustomerName = s.CustomerName()
	return inv
}

// SaleInvoice bills a sale from its lines
func SaleInvoice(s *entity.SaleWithItems, taxPercent float64, discount Discount) *Invoice {
	items := make([]InvoiceItem, 0, len(s.Items))
	for _, it := range s.Items {
		item := InvoiceItem{Quantity: float64(it.Quantity), Price: it.UnitPrice}
		if it.SparePart != nil {
			item.Name, item.Description = it.SparePart.PartName, it.SparePart.PartNumber
		}
		items = append(items, item)
	}

	inv := Compute(items, taxPercent, discount)
	inv.Number = s.InvoiceNumber
	inv.Date = s.SaleDate
	inv.CustomerName = s.CustomerName
	return inv
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
