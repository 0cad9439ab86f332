package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary  = "Summary"
	sheetMonthly  = "Monthly Revenue"
	sheetLowStock = "Low Stock"
)

// ExportReport renders the yearly report as an xlsx workbook
func (s *ReportService) ExportReport(ctx context.Context, year int) ([]byte, error) {
	report, err := s.GetReport(ctx, year)
	if err != nil {
		return nil, err
	}
	chart, err := s.GetChartData(ctx, year)
	if err != nil {
		return nil, err
	}
	top, err := s.GetTopCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return BuildReportWorkbook(report, chart, top)
}

// BuildReportWorkbook lays the report out over summary, monthly and low
// stock sheets
func BuildReportWorkbook(report *Report, chart []MonthlyRevenue, top []TopCustomer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	for _, name := range []string{sheetMonthly, sheetLowStock} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("excel: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}

	summary := [][]any{
		{"Report", report.Year},
		{"Period", report.Period.From.Format("2006-01-02") + " to " + report.Period.To.AddDate(0, 0, -1).Format("2006-01-02")},
		{"Total revenue", report.TotalRevenue},
		{"Revenue change (%)", report.RevenueChange},
		{"Services completed", report.ServicesCompleted},
		{"Services change (%)", report.ServicesChange},
		{"Active customers", report.ActiveCustomers},
		{"Customers change (%)", report.CustomersChange},
		{},
		{"Service type", "Count"},
	}
	for _, st := range report.ServiceTypeData {
		summary = append(summary, []any{st.Name, st.Value})
	}
	summary = append(summary, []any{}, []any{"Top customer", "Services", "Total spent", "Last service"})
	for _, c := range top {
		summary = append(summary, []any{c.Name, c.Services, c.TotalSpent, c.LastService.Format("2006-01-02")})
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "A8", bold); err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}

	monthly := [][]any{{"Month", "Revenue", "Sales revenue", "Services revenue"}}
	for _, p := range chart {
		monthly = append(monthly, []any{p.Month, p.Revenue, p.SalesRevenue, p.ServicesRevenue})
	}
	if err := writeRows(f, sheetMonthly, monthly); err != nil {
		return nil, err
	}

	lowStock := [][]any{{"Part", "Current", "Threshold", "Status"}}
	for _, it := range report.LowStockItems {
		lowStock = append(lowStock, []any{it.Name, it.Current, it.Threshold, string(it.Status)})
	}
	if err := writeRows(f, sheetLowStock, lowStock); err != nil {
		return nil, err
	}

	for _, sheet := range []string{sheetMonthly, sheetLowStock} {
		if err := f.SetCellStyle(sheet, "A1", "D1", bold); err != nil {
			return nil, fmt.Errorf("excel: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("excel: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("excel: %w", err)
		}
	}
	return nil
}
