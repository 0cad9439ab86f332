package repository

import "time"

// DateRange bounds a date column. From is inclusive, To is exclusive.
// A zero bound leaves that side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether neither bound is set
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains checks if t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

// ServiceFilter narrows a service listing
type ServiceFilter struct {
	ServiceDate     DateRange `json:"service_date"`
	NextServiceDate DateRange `json:"next_service_date"`
	// OrderBy is one of "created_at" (default), "service_date" or "next_service_date"
	OrderBy string `json:"order_by,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// SaleFilter narrows a sale listing
type SaleFilter struct {
	SaleDate DateRange `json:"sale_date"`
	Search   string    `json:"search,omitempty"`
	// OrderBy is one of "sale_date" (default) or "created_at"
	OrderBy string `json:"order_by,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}
