package handler

import (
	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/request"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SparePartHandler handles the parts inventory
type SparePartHandler struct {
	partService *service.SparePartService
}

// NewSparePartHandler creates a new spare part handler
func NewSparePartHandler(partService *service.SparePartService) *SparePartHandler {
	return &SparePartHandler{partService: partService}
}

func (h *SparePartHandler) List(c *gin.Context) {
	parts, err := h.partService.ListSpareParts(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Spare parts retrieved successfully", parts)
}

// LowStock lists parts at or below their reorder threshold
func (h *SparePartHandler) LowStock(c *gin.Context) {
	items, err := h.partService.LowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Low stock items retrieved successfully", items)
}

func (h *SparePartHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "spare part")
	if !ok {
		return
	}
	part, err := h.partService.GetSparePart(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Spare part retrieved successfully", part)
}

func (h *SparePartHandler) Create(c *gin.Context) {
	var req request.SparePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	part, err := h.partService.CreateSparePart(c.Request.Context(), toSparePartInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Spare part created successfully", part)
}

func (h *SparePartHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "spare part")
	if !ok {
		return
	}
	var req request.SparePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	part, err := h.partService.UpdateSparePart(c.Request.Context(), id, toSparePartInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Spare part updated successfully", part)
}

func (h *SparePartHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "spare part")
	if !ok {
		return
	}
	if err := h.partService.DeleteSparePart(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Spare part deleted successfully", nil)
}

// AdjustStock applies a stock delta
func (h *SparePartHandler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c, "id", "spare part")
	if !ok {
		return
	}
	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	part, err := h.partService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock adjusted successfully", part)
}

func toSparePartInput(req request.SparePartRequest) *service.SparePartInput {
	return &service.SparePartInput{
		PartName:         req.PartName,
		PartNumber:       req.PartNumber,
		QuantityInStock:  req.QuantityInStock,
		ReorderThreshold: req.ReorderThreshold,
		UnitPrice:        req.UnitPrice,
	}
}
