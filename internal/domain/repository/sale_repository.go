package repository

import (
	"context"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItems(ctx context.Context, items []entity.SaleItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleWithItems, error)
	List(ctx context.Context, filter SaleFilter) ([]entity.SaleWithItems, error)
	// Delete removes the sale and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
