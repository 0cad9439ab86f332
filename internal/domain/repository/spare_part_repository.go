package repository

import (
	"context"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/google/uuid"
)

// SparePartRepository defines the interface for spare part data operations
type SparePartRepository interface {
	Create(ctx context.Context, part *entity.SparePart) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SparePart, error)
	Update(ctx context.Context, part *entity.SparePart) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string) ([]entity.SparePart, error)
	// ListLowStock returns parts at or below their reorder threshold, lowest stock first
	ListLowStock(ctx context.Context) ([]entity.SparePart, error)
	// AdjustStock adds delta (which may be negative) to the stock level
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entity.SparePart, error)
}
