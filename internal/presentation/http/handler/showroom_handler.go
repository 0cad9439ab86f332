package handler

import (
	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/request"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ShowroomHandler serves the public showroom and its admin management
type ShowroomHandler struct {
	showroomService *service.ShowroomService
}

// NewShowroomHandler creates a new showroom handler
func NewShowroomHandler(showroomService *service.ShowroomService) *ShowroomHandler {
	return &ShowroomHandler{showroomService: showroomService}
}

func (h *ShowroomHandler) List(c *gin.Context) {
	cars, err := h.showroomService.ListCars(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Showroom cars retrieved successfully", cars)
}

// Hero returns the landing car. ?car= selects a specific one.
func (h *ShowroomHandler) Hero(c *gin.Context) {
	var id *uuid.UUID
	if raw := c.Query("car"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid car ID")
			return
		}
		id = &parsed
	}

	car, err := h.showroomService.HeroCar(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Showroom car retrieved successfully", car)
}

func (h *ShowroomHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "car")
	if !ok {
		return
	}
	car, err := h.showroomService.GetCar(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Showroom car retrieved successfully", car)
}

// InterestLink returns the WhatsApp link for buying a car
func (h *ShowroomHandler) InterestLink(c *gin.Context) {
	id, ok := parseID(c, "id", "car")
	if !ok {
		return
	}
	link, err := h.showroomService.InterestLink(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Contact link generated successfully", gin.H{"link": link})
}

// Inquiry turns a contact form into a WhatsApp hand-off
func (h *ShowroomHandler) Inquiry(c *gin.Context) {
	var req request.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	inquiry, err := h.showroomService.Inquiry(c.Request.Context(), &service.InquiryInput{
		CarID:   req.CarID,
		Name:    req.Name,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Inquiry prepared successfully", inquiry)
}

func (h *ShowroomHandler) Create(c *gin.Context) {
	var req request.ShowroomCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	car, err := h.showroomService.CreateCar(c.Request.Context(), toShowroomCarInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Showroom car created successfully", car)
}

func (h *ShowroomHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "car")
	if !ok {
		return
	}
	var req request.ShowroomCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	car, err := h.showroomService.UpdateCar(c.Request.Context(), id, toShowroomCarInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Showroom car updated successfully", car)
}

func (h *ShowroomHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "car")
	if !ok {
		return
	}
	if err := h.showroomService.DeleteCar(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Showroom car deleted successfully", nil)
}

// DeleteImage removes one gallery image
func (h *ShowroomHandler) DeleteImage(c *gin.Context) {
	id, ok := parseID(c, "image_id", "image")
	if !ok {
		return
	}
	if err := h.showroomService.DeleteImage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Image deleted successfully", nil)
}

func toShowroomCarInput(req request.ShowroomCarRequest) *service.ShowroomCarInput {
	return &service.ShowroomCarInput{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Engine:      req.Engine,
		Power:       req.Power,
		Weight:      req.Weight,
		TopSpeed:    req.TopSpeed,
		IsFeatured:  req.IsFeatured,
		Images:      req.Images,
	}
}
