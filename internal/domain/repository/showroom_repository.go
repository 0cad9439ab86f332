package repository

import (
	"context"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/google/uuid"
)

// ShowroomRepository defines the interface for showroom data operations.
// The showroom always lives in the elite tables.
type ShowroomRepository interface {
	Create(ctx context.Context, car *entity.ShowroomCar) error
	AddImages(ctx context.Context, images []entity.ShowroomCarImage) error
	Update(ctx context.Context, car *entity.ShowroomCar) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ShowroomCarWithImages, error)
	// List returns featured cars first, then newest first
	List(ctx context.Context) ([]entity.ShowroomCarWithImages, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteImage(ctx context.Context, id uuid.UUID) error
}
