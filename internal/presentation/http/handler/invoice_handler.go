package handler

import (
	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/domain/enum"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/request"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler renders invoices for services and sales
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func bindInvoiceQuery(c *gin.Context) (request.InvoiceQuery, service.Discount, bool) {
	var q request.InvoiceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return q, service.Discount{}, false
	}
	return q, service.Discount{Type: enum.ParseDiscountType(q.DiscountType), Value: q.DiscountValue}, true
}

// Service renders a service invoice. A discount stored on the service wins
// over the requested one.
func (h *InvoiceHandler) Service(c *gin.Context) {
	id, ok := parseID(c, "id", "service")
	if !ok {
		return
	}
	_, discount, ok := bindInvoiceQuery(c)
	if !ok {
		return
	}
	inv, err := h.invoiceService.ServiceInvoice(c.Request.Context(), id, discount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice generated successfully", inv)
}

// Sale renders a sale invoice with optional tax and discount
func (h *InvoiceHandler) Sale(c *gin.Context) {
	id, ok := parseID(c, "id", "sale")
	if !ok {
		return
	}
	q, discount, ok := bindInvoiceQuery(c)
	if !ok {
		return
	}
	inv, err := h.invoiceService.SaleInvoice(c.Request.Context(), id, q.TaxPercent, discount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice generated successfully", inv)
}
