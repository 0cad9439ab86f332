package handler

import (
	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/request"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// TenantHandler exposes the active database selection
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// GetCurrent returns the active database and the available ones
func (h *TenantHandler) GetCurrent(c *gin.Context) {
	response.OK(c, "Database retrieved successfully", h.tenantService.GetCurrent())
}

// Switch changes the active database. Every cached read is dropped.
func (h *TenantHandler) Switch(c *gin.Context) {
	var req request.SwitchTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.tenantService.Switch(c.Request.Context(), req.DatabaseType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Database switched successfully", info)
}
