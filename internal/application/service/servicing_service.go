package service

import (
	"context"
	"fmt"
	"time"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/google/uuid"
)

// UpcomingWindow is how far ahead the upcoming services list looks
const UpcomingWindow = 7 * 24 * time.Hour

// ServicingService handles the services performed on customer vehicles
type ServicingService struct {
	serviceRepo repository.ServiceRepository
	typeRepo    repository.ServiceTypeRepository
	vehicleRepo repository.VehicleRepository
	cache       *cache.QueryCache
	now         func() time.Time
}

// NewServicingService creates a new servicing service
func NewServicingService(
	serviceRepo repository.ServiceRepository,
	typeRepo repository.ServiceTypeRepository,
	vehicleRepo repository.VehicleRepository,
	qc *cache.QueryCache,
) *ServicingService {
	return &ServicingService{
		serviceRepo: serviceRepo,
		typeRepo:    typeRepo,
		vehicleRepo: vehicleRepo,
		cache:       qc,
		now:         time.Now,
	}
}

// ListServices lists services with every relation hydrated
func (s *ServicingService) ListServices(ctx context.Context, filter repository.ServiceFilter) ([]entity.ServiceWithDetails, error) {
	key, err := tenantKey(ctx, cache.EntityServices, filter)
	if err != nil {
		return nil, err
	}
	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Transactional, func(ctx context.Context) ([]entity.ServiceWithDetails, error) {
		return s.serviceRepo.List(ctx, filter)
	})
}

// UpcomingServices lists services due between today and a week from today,
// soonest first
func (s *ServicingService) UpcomingServices(ctx context.Context) ([]entity.ServiceWithDetails, error) {
	return s.ListServices(ctx, upcomingFilter(s.now(), 0))
}

func upcomingFilter(now time.Time, limit int) repository.ServiceFilter {
	today := dayStart(now.UTC())
	return repository.ServiceFilter{
		NextServiceDate: repository.DateRange{From: today, To: today.Add(UpcomingWindow + 24*time.Hour)},
		OrderBy:         "next_service_date",
		Limit:           limit,
	}
}

// GetService retrieves a service by ID
func (s *ServicingService) GetService(ctx context.Context, id uuid.UUID) (*entity.ServiceWithDetails, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

// ServicePartInput is a part consumed by a new service
type ServicePartInput struct {
	SparePartID uuid.UUID
	Quantity    int
	UnitPrice   float64
}

// CreateServiceInput represents the create service input
type CreateServiceInput struct {
	VehicleID     uuid.UUID
	ServiceTypeID uuid.UUID
	ServiceDate   time.Time
	LaborCharges  float64
	// TotalCost defaults to base price plus labor plus parts when nil
	TotalCost       *float64
	NextServiceDate *time.Time
	Notes           *string
	Parts           []ServicePartInput
}

func (in *CreateServiceInput) validate() error {
	var errs fieldErrors
	errs.check(in.VehicleID != uuid.Nil, "vehicle_id", "vehicle_id is required")
	errs.check(in.ServiceTypeID != uuid.Nil, "service_type_id", "service_type_id is required")
	errs.check(!in.ServiceDate.IsZero(), "service_date", "service_date is required")
	errs.check(in.LaborCharges >= 0, "labor_charges", "labor_charges cannot be negative")
	if in.TotalCost != nil {
		errs.check(*in.TotalCost >= 0, "total_cost", "total_cost cannot be negative")
	}
	if in.NextServiceDate != nil && !in.ServiceDate.IsZero() {
		errs.check(!in.NextServiceDate.Before(in.ServiceDate), "next_service_date", "next_service_date cannot precede service_date")
	}
	for i, p := range in.Parts {
		field := fmt.Sprintf("parts[%d]", i)
		errs.check(p.SparePartID != uuid.Nil, field+".spare_part_id", "spare_part_id is required")
		errs.check(p.Quantity > 0, field+".quantity", "quantity must be positive")
		errs.check(p.UnitPrice >= 0, field+".unit_price", "unit_price cannot be negative")
	}
	return errs.err()
}

// CreateService records a service and the parts it used. The service is
// written first; a failure writing the parts leaves the service in place
// and returns a PartialWriteError.
func (s *ServicingService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	st, err := s.typeRepo.GetByID(ctx, input.ServiceTypeID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperror.NewNotFoundError("Service type")
	}

	var partsTotal float64
	for _, p := range input.Parts {
		partsTotal += float64(p.Quantity) * p.UnitPrice
	}
	total := st.BasePrice + input.LaborCharges + partsTotal
	if input.TotalCost != nil {
		total = *input.TotalCost
	}

	svc := &entity.Service{
		VehicleID:       input.VehicleID,
		ServiceTypeID:   input.ServiceTypeID,
		ServiceDate:     input.ServiceDate,
		LaborCharges:    input.LaborCharges,
		TotalCost:       total,
		NextServiceDate: input.NextServiceDate,
		Notes:           input.Notes,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}

	if len(input.Parts) > 0 {
		parts := make([]entity.ServicePart, 0, len(input.Parts))
		for _, p := range input.Parts {
			parts = append(parts, entity.ServicePart{
				ServiceID:   svc.ID,
				SparePartID: p.SparePartID,
				Quantity:    p.Quantity,
				UnitPrice:   p.UnitPrice,
				Subtotal:    float64(p.Quantity) * p.UnitPrice,
			})
		}
		if err := s.serviceRepo.CreateParts(ctx, parts); err != nil {
			s.cache.Invalidate(ctx, cache.EntityServices)
			return nil, apperror.NewPartialWriteError(svc.ID.String(), "service_parts", err)
		}
	}

	s.cache.Invalidate(ctx, cache.EntityServices, cache.EntitySpareParts)
	return svc, nil
}

// DeleteService deletes a service and its parts
func (s *ServicingService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.EntityServices)
	return nil
}
