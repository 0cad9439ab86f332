package handler

import (
	"time"

	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/request"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles counter sales of spare parts
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) List(c *gin.Context) {
	var q request.SaleFilterRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := repository.SaleFilter{Search: q.Search, OrderBy: q.OrderBy, Limit: q.Limit}
	var ok bool
	if filter.SaleDate.From, ok = dateBound(c, "from", q.From); !ok {
		return
	}
	if filter.SaleDate.To, ok = dateUpperBound(c, "to", q.To); !ok {
		return
	}

	sales, err := h.saleService.ListSales(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales retrieved successfully", sales)
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}
	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// Create records a sale with its items
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var saleDate time.Time
	if req.SaleDate != "" {
		var err error
		if saleDate, err = request.ParseDate("sale_date", req.SaleDate); err != nil {
			response.Error(c, err)
			return
		}
	}

	items := make([]service.SaleItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.SaleItemInput{
			SparePartID: it.SparePartID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		CustomerName:  req.CustomerName,
		InvoiceNumber: req.InvoiceNumber,
		SaleDate:      saleDate,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale created successfully", sale)
}

func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}
	if err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale deleted successfully", nil)
}
