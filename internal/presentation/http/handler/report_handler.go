package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// XLSXContentType is the media type of exported workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the analytics pages
type ReportHandler struct {
	reportService *service.ReportService
	now           func() time.Time
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

// GetReport returns the KPI report. ?year= selects a past year; the current
// year compares this month with last month.
func (h *ReportHandler) GetReport(c *gin.Context) {
	year, ok := yearQuery(c, h.now())
	if !ok {
		return
	}
	report, err := h.reportService.GetReport(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Report retrieved successfully", report)
}

// GetChartData returns monthly revenue for the year
func (h *ReportHandler) GetChartData(c *gin.Context) {
	year, ok := yearQuery(c, h.now())
	if !ok {
		return
	}
	chart, err := h.reportService.GetChartData(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Chart data retrieved successfully", chart)
}

func (h *ReportHandler) GetTopCustomers(c *gin.Context) {
	top, err := h.reportService.GetTopCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Top customers retrieved successfully", top)
}

// Export downloads the report as an xlsx workbook
func (h *ReportHandler) Export(c *gin.Context) {
	year, ok := yearQuery(c, h.now())
	if !ok {
		return
	}
	data, err := h.reportService.ExportReport(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%d.xlsx"`, year))
	c.Data(http.StatusOK, XLSXContentType, data)
}
