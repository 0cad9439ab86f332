package service

import (
	"context"
	"time"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/pkg/apperror"
)

// ReportService builds the yearly business reports
type ReportService struct {
	serviceRepo  repository.ServiceRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	partRepo     repository.SparePartRepository
	cache        *cache.QueryCache
	now          func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	serviceRepo repository.ServiceRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	partRepo repository.SparePartRepository,
	qc *cache.QueryCache,
) *ReportService {
	return &ReportService{
		serviceRepo:  serviceRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		partRepo:     partRepo,
		cache:        qc,
		now:          time.Now,
	}
}

// Report summarizes a period against the one before it. For the current
// year the period is the current month, for any other year the whole year.
type Report struct {
	Year              int                  `json:"year"`
	Period            repository.DateRange `json:"period"`
	PreviousPeriod    repository.DateRange `json:"previous_period"`
	TotalRevenue      float64              `json:"total_revenue"`
	RevenueChange     float64              `json:"revenue_change"`
	ServicesCompleted int                  `json:"services_completed"`
	ServicesChange    float64              `json:"services_change"`
	ActiveCustomers   int                  `json:"active_customers"`
	CustomersChange   float64              `json:"customers_change"`
	ServiceTypeData   []ServiceTypeShare   `json:"service_type_data"`
	LowStockItems     []LowStockItem       `json:"low_stock_items"`
}

// MonthlyRevenue is one point of the revenue chart
type MonthlyRevenue struct {
	Month           string  `json:"month"`
	Revenue         float64 `json:"revenue"`
	SalesRevenue    float64 `json:"sales_revenue"`
	ServicesRevenue float64 `json:"services_revenue"`
}

func (s *ReportService) validateYear(year int) error {
	if year < 1900 || year > s.now().Year()+1 {
		return apperror.NewValidationError([]apperror.FieldError{{Field: "year", Message: "year is out of range"}})
	}
	return nil
}

// ReportWindows returns the reported period and the one it is compared with
func ReportWindows(year int, now time.Time) (cur, prev repository.DateRange) {
	if year == now.Year() {
		start := monthStart(now)
		return repository.DateRange{From: start, To: start.AddDate(0, 1, 0)},
			repository.DateRange{From: start.AddDate(0, -1, 0), To: start}
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
	return repository.DateRange{From: start, To: start.AddDate(1, 0, 0)},
		repository.DateRange{From: start.AddDate(-1, 0, 0), To: start}
}

// GetReport returns the summary report for a year
func (s *ReportService) GetReport(ctx context.Context, year int) (*Report, error) {
	if err := s.validateYear(year); err != nil {
		return nil, err
	}
	now := s.now().UTC()

	key, err := tenantKey(ctx, cache.EntityReports, map[string]any{"year": year, "month": int(now.Month())})
	if err != nil {
		return nil, err
	}

	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Reports, func(ctx context.Context) (*Report, error) {
		cur, prev := ReportWindows(year, now)
		both := repository.DateRange{From: prev.From, To: cur.To}

		sales, err := s.saleRepo.List(ctx, repository.SaleFilter{SaleDate: both})
		if err != nil {
			return nil, err
		}
		services, err := s.serviceRepo.List(ctx, repository.ServiceFilter{ServiceDate: both})
		if err != nil {
			return nil, err
		}
		customers, err := s.customerRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		lowStock, err := s.partRepo.ListLowStock(ctx)
		if err != nil {
			return nil, err
		}

		curSales, prevSales := splitSales(sales, cur, prev)
		curServices, prevServices := splitServices(services, cur, prev)

		report := &Report{
			Year:              year,
			Period:            cur,
			PreviousPeriod:    prev,
			TotalRevenue:      Revenue(curSales, curServices),
			ServicesCompleted: len(curServices),
			ActiveCustomers:   len(customers),
			ServiceTypeData:   ServiceTypeDistribution(curServices),
			LowStockItems:     LowStockItems(lowStock),
		}
		report.RevenueChange = PercentChange(report.TotalRevenue, Revenue(prevSales, prevServices))
		report.ServicesChange = PercentChange(float64(len(curServices)), float64(len(prevServices)))

		var joinedBefore int
		for _, c := range customers {
			if prev.Contains(c.CreatedAt) {
				joinedBefore++
			}
		}
		report.CustomersChange = PercentChange(float64(report.ActiveCustomers), float64(joinedBefore))

		return report, nil
	})
}

// GetChartData returns revenue per month of the year, up to the current
// month when the year is the current one
func (s *ReportService) GetChartData(ctx context.Context, year int) ([]MonthlyRevenue, error) {
	if err := s.validateYear(year); err != nil {
		return nil, err
	}
	now := s.now().UTC()

	key, err := tenantKey(ctx, cache.EntityChartData, map[string]any{"year": year, "month": int(now.Month())})
	if err != nil {
		return nil, err
	}

	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Reports, func(ctx context.Context) ([]MonthlyRevenue, error) {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		window := repository.DateRange{From: start, To: start.AddDate(1, 0, 0)}

		sales, err := s.saleRepo.List(ctx, repository.SaleFilter{SaleDate: window})
		if err != nil {
			return nil, err
		}
		services, err := s.serviceRepo.List(ctx, repository.ServiceFilter{ServiceDate: window})
		if err != nil {
			return nil, err
		}

		months := 12
		if year == now.Year() {
			months = int(now.Month())
		}
		return MonthlyChart(year, months, sales, services), nil
	})
}

// MonthlyChart buckets revenue into the first n months of year
func MonthlyChart(year, n int, sales []entity.SaleWithItems, services []entity.ServiceWithDetails) []MonthlyRevenue {
	points := make([]MonthlyRevenue, n)
	for i := range points {
		points[i].Month = time.Month(i + 1).String()[:3]
	}

	bucket := func(t time.Time) int {
		if t.Year() != year || int(t.Month()) > n {
			return -1
		}
		return int(t.Month()) - 1
	}
	for _, sale := range sales {
		if i := bucket(sale.SaleDate); i >= 0 {
			points[i].SalesRevenue += sale.TotalAmount
		}
	}
	for _, svc := range services {
		if i := bucket(svc.ServiceDate); i >= 0 {
			points[i].ServicesRevenue += svc.TotalCost
		}
	}
	for i := range points {
		points[i].Revenue = points[i].SalesRevenue + points[i].ServicesRevenue
	}
	return points
}

// GetTopCustomers ranks customers by service spend over all time
func (s *ReportService) GetTopCustomers(ctx context.Context) ([]TopCustomer, error) {
	key, err := tenantKey(ctx, cache.EntityTopCustomers, nil)
	if err != nil {
		return nil, err
	}
	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Reports, func(ctx context.Context) ([]TopCustomer, error) {
		services, err := s.serviceRepo.List(ctx, repository.ServiceFilter{})
		if err != nil {
			return nil, err
		}
		return TopCustomers(services, TopCustomersLimit), nil
	})
}

func splitSales(sales []entity.SaleWithItems, cur, prev repository.DateRange) (inCur, inPrev []entity.SaleWithItems) {
	for _, s := range sales {
		switch {
		case cur.Contains(s.SaleDate):
			inCur = append(inCur, s)
		case prev.Contains(s.SaleDate):
			inPrev = append(inPrev, s)
		}
	}
	return inCur, inPrev
}

func splitServices(services []entity.ServiceWithDetails, cur, prev repository.DateRange) (inCur, inPrev []entity.ServiceWithDetails) {
	for _, s := range services {
		switch {
		case cur.Contains(s.ServiceDate):
			inCur = append(inCur, s)
		case prev.Contains(s.ServiceDate):
			inPrev = append(inPrev, s)
		}
	}
	return inCur, inPrev
}
