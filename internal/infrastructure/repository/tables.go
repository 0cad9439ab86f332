package repository

import (
	"context"
	"strings"

	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Logical table names. Physical names are resolved per tenant.
const (
	TableCustomers         = "customers"
	TableVehicles          = "vehicles"
	TableServiceTypes      = "service_types"
	TableServices          = "services"
	TableServiceParts      = "service_parts"
	TableSpareParts        = "spare_parts"
	TableSales             = "sales"
	TableSaleItems         = "sale_items"
	TableShowroomCars      = "showroom_cars"
	TableShowroomCarImages = "showroom_car_images"
)

// table returns a query bound to the physical table of the context tenant
func table(ctx context.Context, db *gorm.DB, logical string) (*gorm.DB, error) {
	name, err := tenant.Resolve(ctx, logical)
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx).Table(name), nil
}

// showroomTable ignores the request tenant; the showroom only exists in elite
func showroomTable(ctx context.Context, db *gorm.DB, logical string) *gorm.DB {
	return db.WithContext(ctx).Table(tenant.TableName(tenant.Elite, logical))
}

// DateScope returns a GORM scope restricting column to the range
func DateScope(column string, r repository.DateRange) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !r.From.IsZero() {
			db = db.Where(column+" >= ?", r.From)
		}
		if !r.To.IsZero() {
			db = db.Where(column+" < ?", r.To)
		}
		return db
	}
}

// SearchScope matches term case-insensitively against any of the columns
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			clauses[i] = "LOWER(" + c + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// uniqueIDs drops nil and duplicate ids while keeping first-seen order
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
