package request

import "github.com/google/uuid"

// ShowroomCarRequest creates or replaces a showroom listing
type ShowroomCarRequest struct {
	Make        string   `json:"make" binding:"required,max=100"`
	Model       string   `json:"model" binding:"required,max=100"`
	Year        int      `json:"year" binding:"required"`
	Price       float64  `json:"price" binding:"min=0"`
	ImageURL    string   `json:"image_url" binding:"omitempty,url"`
	Description string   `json:"description"`
	Engine      string   `json:"engine"`
	Power       string   `json:"power"`
	Weight      string   `json:"weight"`
	TopSpeed    string   `json:"top_speed"`
	IsFeatured  bool     `json:"is_featured"`
	Images      []string `json:"images" binding:"omitempty,dive,url"`
}

// InquiryRequest is a visitor's contact form
type InquiryRequest struct {
	CarID   *uuid.UUID `json:"car_id"`
	Name    string     `json:"name" binding:"required,max=255"`
	Phone   string     `json:"phone" binding:"required,max=50"`
	Message string     `json:"message" binding:"max=2000"`
}
