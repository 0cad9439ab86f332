package service

import (
	"context"
	"sort"
	"time"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/enum"
	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/google/uuid"
)

const (
	recentServicesLimit = 3
	recentSalesLimit    = 2
	recentActivityLimit = 5
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	serviceRepo   repository.ServiceRepository
	saleRepo      repository.SaleRepository
	analyticsRepo repository.AnalyticsRepository
	cache         *cache.QueryCache
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	serviceRepo repository.ServiceRepository,
	saleRepo repository.SaleRepository,
	analyticsRepo repository.AnalyticsRepository,
	qc *cache.QueryCache,
) *DashboardService {
	return &DashboardService{
		serviceRepo:   serviceRepo,
		saleRepo:      saleRepo,
		analyticsRepo: analyticsRepo,
		cache:         qc,
		now:           time.Now,
	}
}

// DashboardStats represents dashboard statistics for the current month
type DashboardStats struct {
	Revenue           float64                     `json:"revenue"`
	PartsSold         int                         `json:"parts_sold"`
	ServicesCompleted int                         `json:"services_completed"`
	LowStockAlerts    int                         `json:"low_stock_alerts"`
	UpcomingServices  []entity.ServiceWithDetails `json:"upcoming_services"`
	RecentActivity    []Activity                  `json:"recent_activity"`
}

// Activity is an entry of the recent activity feed
type Activity struct {
	ID          uuid.UUID         `json:"id"`
	Type        enum.ActivityType `json:"type"`
	Description string            `json:"description"`
	Amount      float64           `json:"amount"`
	Date        time.Time         `json:"date"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now().UTC()
	month := repository.DateRange{From: monthStart(now)}

	key, err := tenantKey(ctx, cache.EntityDashboardStats, now.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Dashboard, func(ctx context.Context) (*DashboardStats, error) {
		stats := &DashboardStats{}

		sales, err := s.saleRepo.List(ctx, repository.SaleFilter{SaleDate: month})
		if err != nil {
			return nil, err
		}
		services, err := s.serviceRepo.List(ctx, repository.ServiceFilter{ServiceDate: month})
		if err != nil {
			return nil, err
		}
		stats.Revenue = Revenue(sales, services)
		stats.ServicesCompleted = len(services)

		if stats.PartsSold, err = s.analyticsRepo.PartsSold(ctx, month); err != nil {
			return nil, err
		}
		if stats.LowStockAlerts, err = s.analyticsRepo.LowStockCount(ctx); err != nil {
			return nil, err
		}

		if stats.UpcomingServices, err = s.serviceRepo.List(ctx, upcomingFilter(now, 0)); err != nil {
			return nil, err
		}

		recentServices, err := s.serviceRepo.List(ctx, repository.ServiceFilter{OrderBy: "created_at", Limit: recentServicesLimit})
		if err != nil {
			return nil, err
		}
		recentSales, err := s.saleRepo.List(ctx, repository.SaleFilter{OrderBy: "created_at", Limit: recentSalesLimit})
		if err != nil {
			return nil, err
		}
		stats.RecentActivity = RecentActivity(recentServices, recentSales, recentActivityLimit)

		return stats, nil
	})
}

// RecentActivity merges services and sales into one feed, newest first
func RecentActivity(services []entity.ServiceWithDetails, sales []entity.SaleWithItems, limit int) []Activity {
	feed := make([]Activity, 0, len(services)+len(sales))
	for _, svc := range services {
		feed = append(feed, Activity{
			ID:          svc.ID,
			Type:        enum.ActivityTypeService,
			Description: svc.ServiceTypeName() + " for " + svc.CustomerName(),
			Amount:      svc.TotalCost,
			Date:        svc.ServiceDate,
		})
	}
	for _, sale := range sales {
		feed = append(feed, Activity{
			ID:          sale.ID,
			Type:        enum.ActivityTypeSale,
			Description: "Sale to " + sale.CustomerName,
			Amount:      sale.TotalAmount,
			Date:        sale.SaleDate,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}
