package request

// InvoiceQuery carries the adjustments applied when rendering an invoice.
// DiscountType is "flat" (default) or "percent".
type InvoiceQuery struct {
	TaxPercent    float64 `form:"tax_percent"`
	DiscountType  string  `form:"discount_type"`
	DiscountValue float64 `form:"discount_value"`
}
