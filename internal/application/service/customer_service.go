package service

import (
	"context"
	"time"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/elitemotors/detailing-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
	saleRepo     repository.SaleRepository
	cache        *cache.QueryCache
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	saleRepo repository.SaleRepository,
	qc *cache.QueryCache,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		saleRepo:     saleRepo,
		cache:        qc,
	}
}

// VehicleInput describes a vehicle registered with its owner
type VehicleInput struct {
	Make               string
	Model              string
	Year               int
	RegistrationNumber string
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
	Vehicle VehicleInput
}

func (in *CreateCustomerInput) validate() error {
	var errs fieldErrors
	errs.required("name", in.Name)
	errs.required("vehicle.make", in.Vehicle.Make)
	errs.required("vehicle.model", in.Vehicle.Model)
	errs.required("vehicle.registration_number", in.Vehicle.RegistrationNumber)
	errs.check(in.Vehicle.Year >= 1886 && in.Vehicle.Year <= time.Now().Year()+1, "vehicle.year", "vehicle.year is out of range")
	return errs.err()
}

// CreateCustomer registers a customer and its first vehicle. The two writes
// are sequential: if the vehicle fails the customer stays and a
// PartialWriteError carrying its id is returned.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.CustomerWithVehicles, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	vehicle := &entity.Vehicle{
		CustomerID:         customer.ID,
		Make:               input.Vehicle.Make,
		Model:              input.Vehicle.Model,
		Year:               input.Vehicle.Year,
		RegistrationNumber: input.Vehicle.RegistrationNumber,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		s.cache.Invalidate(ctx, cache.EntityCustomers)
		return nil, apperror.NewPartialWriteError(customer.ID.String(), "vehicle", err)
	}

	s.cache.Invalidate(ctx, cache.EntityCustomers, cache.EntityVehicles)
	return &entity.CustomerWithVehicles{Customer: *customer, Vehicles: []entity.Vehicle{*vehicle}}, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with the vehicles they own
func (s *CustomerService) ListCustomers(ctx context.Context) ([]entity.CustomerWithVehicles, error) {
	key, err := tenantKey(ctx, cache.EntityCustomers, nil)
	if err != nil {
		return nil, err
	}
	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Transactional, s.customerRepo.ListWithVehicles)
}

// ListVehicles lists the vehicles of one customer
func (s *CustomerService) ListVehicles(ctx context.Context, customerID uuid.UUID) ([]entity.Vehicle, error) {
	key, err := tenantKey(ctx, cache.EntityVehicles, customerID)
	if err != nil {
		return nil, err
	}
	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Transactional, func(ctx context.Context) ([]entity.Vehicle, error) {
		return s.vehicleRepo.ListByCustomer(ctx, customerID)
	})
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	if input.Name != nil {
		var errs fieldErrors
		errs.required("name", *input.Name)
		if err := errs.err(); err != nil {
			return nil, err
		}
	}

	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	// services embed the customer name
	s.cache.Invalidate(ctx, cache.EntityCustomers, cache.EntityServices)
	return customer, nil
}

// DeleteCustomer deletes a customer and the vehicles it owns
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.EntityCustomers, cache.EntityVehicles, cache.EntityServices)
	return nil
}

// ListMergedCustomers returns registered customers and walk-in sale
// customers as one list, filtered by search and paged
func (s *CustomerService) ListMergedCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[MergedCustomer], error) {
	key, err := tenantKey(ctx, cache.EntityCustomersView, nil)
	if err != nil {
		return nil, err
	}

	rows, err := cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Transactional, func(ctx context.Context) ([]MergedCustomer, error) {
		customers, err := s.customerRepo.ListWithVehicles(ctx)
		if err != nil {
			return nil, err
		}
		sales, err := s.saleRepo.List(ctx, repository.SaleFilter{})
		if err != nil {
			return nil, err
		}
		return MergeCustomers(customers, sales), nil
	})
	if err != nil {
		return nil, err
	}

	return pagination.Paginate(FilterMergedCustomers(rows, search), params), nil
}
