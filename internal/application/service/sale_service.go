package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/google/uuid"
)

// SaleService handles over-the-counter part sales
type SaleService struct {
	saleRepo repository.SaleRepository
	cache    *cache.QueryCache
	now      func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, qc *cache.QueryCache) *SaleService {
	return &SaleService{saleRepo: saleRepo, cache: qc, now: time.Now}
}

// SaleItemInput is one line of a new sale
type SaleItemInput struct {
	SparePartID uuid.UUID
	Quantity    int
	UnitPrice   float64
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CustomerName string
	// InvoiceNumber is generated when empty
	InvoiceNumber string
	SaleDate      time.Time
	Items         []SaleItemInput
}

func (in *CreateSaleInput) validate() error {
	var errs fieldErrors
	errs.required("customer_name", in.CustomerName)
	errs.check(len(in.Items) > 0, "items", "at least one item is required")
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		errs.check(it.SparePartID != uuid.Nil, field+".spare_part_id", "spare_part_id is required")
		errs.check(it.Quantity > 0, field+".quantity", "quantity must be positive")
		errs.check(it.UnitPrice >= 0, field+".unit_price", "unit_price cannot be negative")
	}
	return errs.err()
}

// ListSales lists sales with their lines, most recent first
func (s *SaleService) ListSales(ctx context.Context, filter repository.SaleFilter) ([]entity.SaleWithItems, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	key, err := tenantKey(ctx, cache.EntitySales, filter)
	if err != nil {
		return nil, err
	}
	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Transactional, func(ctx context.Context) ([]entity.SaleWithItems, error) {
		return s.saleRepo.List(ctx, filter)
	})
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.SaleWithItems, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// CreateSale records a sale and then its lines. A failure writing the lines
// keeps the sale and returns a PartialWriteError.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.SaleWithItems, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	saleDate := input.SaleDate
	if saleDate.IsZero() {
		saleDate = dayStart(s.now().UTC())
	}

	var total float64
	for _, it := range input.Items {
		total += float64(it.Quantity) * it.UnitPrice
	}

	sale := &entity.Sale{
		ID:            uuid.New(),
		CustomerName:  strings.TrimSpace(input.CustomerName),
		InvoiceNumber: strings.TrimSpace(input.InvoiceNumber),
		SaleDate:      saleDate,
		TotalAmount:   total,
	}
	if sale.InvoiceNumber == "" {
		sale.InvoiceNumber = invoiceNumber(saleDate, sale.ID)
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	items := make([]entity.SaleItem, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, entity.SaleItem{
			SaleID:      sale.ID,
			SparePartID: it.SparePartID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    float64(it.Quantity) * it.UnitPrice,
		})
	}
	if err := s.saleRepo.CreateItems(ctx, items); err != nil {
		s.cache.Invalidate(ctx, cache.EntitySales)
		return nil, apperror.NewPartialWriteError(sale.ID.String(), "sale_items", err)
	}

	s.cache.Invalidate(ctx, cache.EntitySales)

	details := make([]entity.SaleItemDetail, len(items))
	for i, it := range items {
		details[i] = entity.SaleItemDetail{SaleItem: it}
	}
	return &entity.SaleWithItems{Sale: *sale, Items: details}, nil
}

// DeleteSale deletes a sale and its lines
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSale(ctx, id); err != nil {
		return err
	}
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.EntitySales)
	return nil
}

func invoiceNumber(date time.Time, id uuid.UUID) string {
	return fmt.Sprintf("INV-%s-%s", date.Format("20060102"), strings.ToUpper(shortID(id.String())))
}
