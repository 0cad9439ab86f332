package repository

import (
	"context"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/google/uuid"
)

// ServiceTypeRepository defines the interface for service type data operations
type ServiceTypeRepository interface {
	Create(ctx context.Context, serviceType *entity.ServiceType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error)
	Update(ctx context.Context, serviceType *entity.ServiceType) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.ServiceType, error)
}

// ServiceRepository defines the interface for service data operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	CreateParts(ctx context.Context, parts []entity.ServicePart) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceWithDetails, error)
	// List returns services with vehicle, customer, type and parts hydrated
	List(ctx context.Context, filter ServiceFilter) ([]entity.ServiceWithDetails, error)
	// Delete removes the service and its parts
	Delete(ctx context.Context, id uuid.UUID) error
}
