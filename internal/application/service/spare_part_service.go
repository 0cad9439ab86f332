package service

import (
	"context"
	"strings"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/google/uuid"
)

// SparePartService manages the parts inventory
type SparePartService struct {
	partRepo repository.SparePartRepository
	cache    *cache.QueryCache
}

// NewSparePartService creates a new spare part service
func NewSparePartService(partRepo repository.SparePartRepository, qc *cache.QueryCache) *SparePartService {
	return &SparePartService{partRepo: partRepo, cache: qc}
}

// SparePartInput represents the create and update input
type SparePartInput struct {
	PartName         string
	PartNumber       string
	QuantityInStock  int
	ReorderThreshold int
	UnitPrice        float64
}

func (in *SparePartInput) validate() error {
	var errs fieldErrors
	errs.required("part_name", in.PartName)
	errs.required("part_number", in.PartNumber)
	errs.check(in.QuantityInStock >= 0, "quantity_in_stock", "quantity_in_stock cannot be negative")
	errs.check(in.ReorderThreshold >= 0, "reorder_threshold", "reorder_threshold cannot be negative")
	errs.check(in.UnitPrice >= 0, "unit_price", "unit_price cannot be negative")
	return errs.err()
}

// ListSpareParts lists parts, newest first, optionally matching search
func (s *SparePartService) ListSpareParts(ctx context.Context, search string) ([]entity.SparePart, error) {
	search = strings.TrimSpace(search)
	key, err := tenantKey(ctx, cache.EntitySpareParts, map[string]string{"search": strings.ToLower(search)})
	if err != nil {
		return nil, err
	}
	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Transactional, func(ctx context.Context) ([]entity.SparePart, error) {
		return s.partRepo.List(ctx, search)
	})
}

// LowStock lists parts at or below their reorder threshold with their status
func (s *SparePartService) LowStock(ctx context.Context) ([]LowStockItem, error) {
	key, err := tenantKey(ctx, cache.EntitySpareParts, map[string]string{"view": "low_stock"})
	if err != nil {
		return nil, err
	}
	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Transactional, func(ctx context.Context) ([]LowStockItem, error) {
		parts, err := s.partRepo.ListLowStock(ctx)
		if err != nil {
			return nil, err
		}
		return LowStockItems(parts), nil
	})
}

// GetSparePart retrieves a part by ID
func (s *SparePartService) GetSparePart(ctx context.Context, id uuid.UUID) (*entity.SparePart, error) {
	part, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, apperror.NewNotFoundError("Spare part")
	}
	return part, nil
}

// CreateSparePart adds a part to the inventory
func (s *SparePartService) CreateSparePart(ctx context.Context, input *SparePartInput) (*entity.SparePart, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	part := &entity.SparePart{
		PartName:         input.PartName,
		PartNumber:       input.PartNumber,
		QuantityInStock:  input.QuantityInStock,
		ReorderThreshold: input.ReorderThreshold,
		UnitPrice:        input.UnitPrice,
	}
	if err := s.partRepo.Create(ctx, part); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.EntitySpareParts)
	return part, nil
}

// UpdateSparePart replaces a part
func (s *SparePartService) UpdateSparePart(ctx context.Context, id uuid.UUID, input *SparePartInput) (*entity.SparePart, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	part, err := s.GetSparePart(ctx, id)
	if err != nil {
		return nil, err
	}

	part.PartName = input.PartName
	part.PartNumber = input.PartNumber
	part.QuantityInStock = input.QuantityInStock
	part.ReorderThreshold = input.ReorderThreshold
	part.UnitPrice = input.UnitPrice

	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, err
	}

	// part names show on service and sale lines
	s.cache.Invalidate(ctx, cache.EntitySpareParts, cache.EntityServices, cache.EntitySales)
	return part, nil
}

// DeleteSparePart deletes a part
func (s *SparePartService) DeleteSparePart(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSparePart(ctx, id); err != nil {
		return err
	}
	if err := s.partRepo.Delete(ctx, id); err != nil {
		return err
	}
	// service and sale lines show the part's name and number
	s.cache.Invalidate(ctx, cache.EntitySpareParts, cache.EntityServices, cache.EntitySales)
	return nil
}

// AdjustStock adds delta to a part's stock. Stock never goes below zero.
func (s *SparePartService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entity.SparePart, error) {
	if delta == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "delta", Message: "delta must not be zero"}})
	}

	part, err := s.GetSparePart(ctx, id)
	if err != nil {
		return nil, err
	}
	if part.QuantityInStock+delta < 0 {
		return nil, apperror.NewBadRequestError("insufficient stock")
	}

	updated, err := s.partRepo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewNotFoundError("Spare part")
	}

	s.cache.Invalidate(ctx, cache.EntitySpareParts)
	return updated, nil
}
