package handler

import (
	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/request"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ServiceTypeHandler handles the service catalogue
type ServiceTypeHandler struct {
	typeService *service.ServiceTypeService
}

// NewServiceTypeHandler creates a new service type handler
func NewServiceTypeHandler(typeService *service.ServiceTypeService) *ServiceTypeHandler {
	return &ServiceTypeHandler{typeService: typeService}
}

func (h *ServiceTypeHandler) List(c *gin.Context) {
	types, err := h.typeService.ListServiceTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service types retrieved successfully", types)
}

func (h *ServiceTypeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "service type")
	if !ok {
		return
	}
	st, err := h.typeService.GetServiceType(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service type retrieved successfully", st)
}

func (h *ServiceTypeHandler) Create(c *gin.Context) {
	var req request.ServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	st, err := h.typeService.CreateServiceType(c.Request.Context(), toServiceTypeInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Service type created successfully", st)
}

func (h *ServiceTypeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "service type")
	if !ok {
		return
	}
	var req request.ServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	st, err := h.typeService.UpdateServiceType(c.Request.Context(), id, toServiceTypeInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service type updated successfully", st)
}

func (h *ServiceTypeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "service type")
	if !ok {
		return
	}
	if err := h.typeService.DeleteServiceType(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service type deleted successfully", nil)
}

func toServiceTypeInput(req request.ServiceTypeRequest) *service.ServiceTypeInput {
	return &service.ServiceTypeInput{
		Name:                   req.Name,
		Description:            req.Description,
		BasePrice:              req.BasePrice,
		EstimatedDurationHours: req.EstimatedDurationHours,
	}
}
