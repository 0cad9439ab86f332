package service

import (
	"context"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/google/uuid"
)

// ServiceTypeService manages the service catalogue
type ServiceTypeService struct {
	typeRepo repository.ServiceTypeRepository
	cache    *cache.QueryCache
}

// NewServiceTypeService creates a new service type service
func NewServiceTypeService(typeRepo repository.ServiceTypeRepository, qc *cache.QueryCache) *ServiceTypeService {
	return &ServiceTypeService{typeRepo: typeRepo, cache: qc}
}

// ServiceTypeInput represents the create and update input
type ServiceTypeInput struct {
	Name                   string
	Description            *string
	BasePrice              float64
	EstimatedDurationHours *float64
}

func (in *ServiceTypeInput) validate() error {
	var errs fieldErrors
	errs.required("name", in.Name)
	errs.check(in.BasePrice >= 0, "base_price", "base_price cannot be negative")
	if in.EstimatedDurationHours != nil {
		errs.check(*in.EstimatedDurationHours >= 0, "estimated_duration_hours", "estimated_duration_hours cannot be negative")
	}
	return errs.err()
}

// ListServiceTypes lists service types by name
func (s *ServiceTypeService) ListServiceTypes(ctx context.Context) ([]entity.ServiceType, error) {
	key, err := tenantKey(ctx, cache.EntityServiceTypes, nil)
	if err != nil {
		return nil, err
	}
	return cache.Fetch(ctx, s.cache, key, s.cache.TTLs().Transactional, s.typeRepo.List)
}

// GetServiceType retrieves a service type by ID
func (s *ServiceTypeService) GetServiceType(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error) {
	st, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperror.NewNotFoundError("Service type")
	}
	return st, nil
}

// CreateServiceType creates a new service type
func (s *ServiceTypeService) CreateServiceType(ctx context.Context, input *ServiceTypeInput) (*entity.ServiceType, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	st := &entity.ServiceType{
		Name:                   input.Name,
		Description:            input.Description,
		BasePrice:              input.BasePrice,
		EstimatedDurationHours: input.EstimatedDurationHours,
	}
	if err := s.typeRepo.Create(ctx, st); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.EntityServiceTypes)
	return st, nil
}

// UpdateServiceType replaces a service type
func (s *ServiceTypeService) UpdateServiceType(ctx context.Context, id uuid.UUID, input *ServiceTypeInput) (*entity.ServiceType, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	st, err := s.GetServiceType(ctx, id)
	if err != nil {
		return nil, err
	}

	st.Name = input.Name
	st.Description = input.Description
	st.BasePrice = input.BasePrice
	st.EstimatedDurationHours = input.EstimatedDurationHours

	if err := s.typeRepo.Update(ctx, st); err != nil {
		return nil, err
	}

	// services and the distribution chart show type names
	s.cache.Invalidate(ctx, cache.EntityServiceTypes, cache.EntityServices)
	return st, nil
}

// DeleteServiceType deletes a service type
func (s *ServiceTypeService) DeleteServiceType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetServiceType(ctx, id); err != nil {
		return err
	}
	if err := s.typeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.EntityServiceTypes, cache.EntityServices)
	return nil
}
