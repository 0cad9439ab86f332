package handler

import (
	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/request"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ServicingHandler handles service records
type ServicingHandler struct {
	servicingService *service.ServicingService
}

// NewServicingHandler creates a new servicing handler
func NewServicingHandler(servicingService *service.ServicingService) *ServicingHandler {
	return &ServicingHandler{servicingService: servicingService}
}

// List returns service records, optionally bounded by service date and
// next-service date
func (h *ServicingHandler) List(c *gin.Context) {
	var q request.ServiceFilterRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var filter repository.ServiceFilter
	var ok bool
	if filter.ServiceDate.From, ok = dateBound(c, "from", q.From); !ok {
		return
	}
	if filter.ServiceDate.To, ok = dateUpperBound(c, "to", q.To); !ok {
		return
	}
	if filter.NextServiceDate.From, ok = dateBound(c, "next_service_from", q.NextServiceFrom); !ok {
		return
	}
	if filter.NextServiceDate.To, ok = dateUpperBound(c, "next_service_to", q.NextServiceTo); !ok {
		return
	}
	filter.OrderBy = q.OrderBy
	filter.Limit = q.Limit

	services, err := h.servicingService.ListServices(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Services retrieved successfully", services)
}

// Upcoming returns services due within the next week
func (h *ServicingHandler) Upcoming(c *gin.Context) {
	services, err := h.servicingService.UpcomingServices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Upcoming services retrieved successfully", services)
}

func (h *ServicingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "service")
	if !ok {
		return
	}

	s, err := h.servicingService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", s)
}

// Create records a service and the parts it consumed
func (h *ServicingHandler) Create(c *gin.Context) {
	var req request.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	serviceDate, err := request.ParseDate("service_date", req.ServiceDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	nextServiceDate, err := request.ParseOptionalDate("next_service_date", req.NextServiceDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	parts := make([]service.ServicePartInput, 0, len(req.Parts))
	for _, p := range req.Parts {
		parts = append(parts, service.ServicePartInput{
			SparePartID: p.SparePartID,
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
		})
	}

	s, err := h.servicingService.CreateService(c.Request.Context(), &service.CreateServiceInput{
		VehicleID:       req.VehicleID,
		ServiceTypeID:   req.ServiceTypeID,
		ServiceDate:     serviceDate,
		LaborCharges:    req.LaborCharges,
		TotalCost:       req.TotalCost,
		NextServiceDate: nextServiceDate,
		Notes:           req.Notes,
		Parts:           parts,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", s)
}

func (h *ServicingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "service")
	if !ok {
		return
	}

	if err := h.servicingService.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service deleted successfully", nil)
}
