package repository

import (
	"context"

	domainRepo "github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) PartsSold(ctx context.Context, window domainRepo.DateRange) (int, error) {
	names := make(map[string]string, 4)
	for _, logical := range []string{TableSales, TableSaleItems, TableServices, TableServiceParts} {
		name, err := tenant.Resolve(ctx, logical)
		if err != nil {
			return 0, err
		}
		names[logical] = name
	}

	var fromSales int64
	err := r.db.WithContext(ctx).
		Table(names[TableSaleItems] + " AS si").
		Select("COALESCE(SUM(si.quantity), 0)").
		Joins("JOIN " + names[TableSales] + " AS s ON s.id = si.sale_id").
		Scopes(DateScope("s.sale_date", window)).
		Scan(&fromSales).Error
	if err != nil {
		return 0, apperror.NewDataAccessError("analytics.parts_sold", err)
	}

	var fromServices int64
	err = r.db.WithContext(ctx).
		Table(names[TableServiceParts] + " AS sp").
		Select("COALESCE(SUM(sp.quantity), 0)").
		Joins("JOIN " + names[TableServices] + " AS sv ON sv.id = sp.service_id").
		Scopes(DateScope("sv.service_date", window)).
		Scan(&fromServices).Error
	if err != nil {
		return 0, apperror.NewDataAccessError("analytics.parts_sold", err)
	}

	return int(fromSales + fromServices), nil
}

func (r *analyticsRepository) LowStockCount(ctx context.Context) (int, error) {
	q, err := table(ctx, r.db, TableSpareParts)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := q.Where("quantity_in_stock <= reorder_threshold").Count(&count).Error; err != nil {
		return 0, apperror.NewDataAccessError("analytics.low_stock_count", err)
	}
	return int(count), nil
}
