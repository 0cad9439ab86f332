package repository

import (
	"context"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete removes the customer and the vehicles it owns
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Customer, error)
	// ListWithVehicles groups vehicles by owner. Customers without a vehicle are not listed.
	ListWithVehicles(ctx context.Context) ([]entity.CustomerWithVehicles, error)
}

// VehicleRepository defines the interface for vehicle data operations
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
