package repository

import (
	"context"
	"errors"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	domainRepo "github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

var saleOrders = map[string]string{
	"":           "sale_date DESC, created_at DESC",
	"sale_date":  "sale_date DESC, created_at DESC",
	"created_at": "created_at DESC",
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	q, err := table(ctx, r.db, TableSales)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("sales.create", q.Create(sale).Error)
}

func (r *saleRepository) CreateItems(ctx context.Context, items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	q, err := table(ctx, r.db, TableSaleItems)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("sale_items.create", q.Create(&items).Error)
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleWithItems, error) {
	q, err := table(ctx, r.db, TableSales)
	if err != nil {
		return nil, err
	}
	var sale entity.Sale
	err = q.First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewDataAccessError("sales.get", err)
	}

	items, err := saleItemsBySale(ctx, r.db, []uuid.UUID{sale.ID})
	if err != nil {
		return nil, apperror.NewDataAccessError("sales.get", err)
	}
	return &entity.SaleWithItems{Sale: sale, Items: nonNilItems(items[sale.ID])}, nil
}

func (r *saleRepository) List(ctx context.Context, filter domainRepo.SaleFilter) ([]entity.SaleWithItems, error) {
	q, err := table(ctx, r.db, TableSales)
	if err != nil {
		return nil, err
	}

	order, ok := saleOrders[filter.OrderBy]
	if !ok {
		return nil, apperror.NewBadRequestError("unsupported sale ordering: " + filter.OrderBy)
	}

	q = q.Scopes(
		DateScope("sale_date", filter.SaleDate),
		SearchScope(filter.Search, "customer_name", "invoice_number"),
	).Order(order)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var sales []entity.Sale
	if err := q.Find(&sales).Error; err != nil {
		return nil, apperror.NewDataAccessError("sales.list", err)
	}

	ids := make([]uuid.UUID, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	items, err := saleItemsBySale(ctx, r.db, ids)
	if err != nil {
		return nil, apperror.NewDataAccessError("sales.list", err)
	}

	out := make([]entity.SaleWithItems, len(sales))
	for i, s := range sales {
		out[i] = entity.SaleWithItems{Sale: s, Items: nonNilItems(items[s.ID])}
	}
	return out, nil
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sales, err := tenant.Resolve(ctx, TableSales)
	if err != nil {
		return err
	}
	items, err := tenant.Resolve(ctx, TableSaleItems)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(items).Where("sale_id = ?", id).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Table(sales).Where("id = ?", id).Delete(&entity.Sale{}).Error
	})
	return apperror.NewDataAccessError("sales.delete", err)
}

func nonNilItems(items []entity.SaleItemDetail) []entity.SaleItemDetail {
	if items == nil {
		return []entity.SaleItemDetail{}
	}
	return items
}
