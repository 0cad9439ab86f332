package repository

import (
	"context"
	"errors"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	domainRepo "github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serviceTypeRepository struct {
	db *gorm.DB
}

// NewServiceTypeRepository creates a new service type repository
func NewServiceTypeRepository(db *gorm.DB) domainRepo.ServiceTypeRepository {
	return &serviceTypeRepository{db: db}
}

func (r *serviceTypeRepository) Create(ctx context.Context, serviceType *entity.ServiceType) error {
	q, err := table(ctx, r.db, TableServiceTypes)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("service_types.create", q.Create(serviceType).Error)
}

func (r *serviceTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error) {
	q, err := table(ctx, r.db, TableServiceTypes)
	if err != nil {
		return nil, err
	}
	var st entity.ServiceType
	err = q.First(&st, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewDataAccessError("service_types.get", err)
	}
	return &st, nil
}

func (r *serviceTypeRepository) Update(ctx context.Context, serviceType *entity.ServiceType) error {
	q, err := table(ctx, r.db, TableServiceTypes)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("service_types.update", q.Save(serviceType).Error)
}

func (r *serviceTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := table(ctx, r.db, TableServiceTypes)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("service_types.delete", q.Where("id = ?", id).Delete(&entity.ServiceType{}).Error)
}

func (r *serviceTypeRepository) List(ctx context.Context) ([]entity.ServiceType, error) {
	q, err := table(ctx, r.db, TableServiceTypes)
	if err != nil {
		return nil, err
	}
	var types []entity.ServiceType
	if err := q.Order("name ASC").Find(&types).Error; err != nil {
		return nil, apperror.NewDataAccessError("service_types.list", err)
	}
	return types, nil
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

var serviceOrders = map[string]string{
	"":                  "created_at DESC",
	"created_at":        "created_at DESC",
	"service_date":      "service_date DESC",
	"next_service_date": "next_service_date ASC",
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	q, err := table(ctx, r.db, TableServices)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("services.create", q.Create(service).Error)
}

func (r *serviceRepository) CreateParts(ctx context.Context, parts []entity.ServicePart) error {
	if len(parts) == 0 {
		return nil
	}
	q, err := table(ctx, r.db, TableServiceParts)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("service_parts.create", q.Create(&parts).Error)
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceWithDetails, error) {
	q, err := table(ctx, r.db, TableServices)
	if err != nil {
		return nil, err
	}
	var service entity.Service
	err = q.First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewDataAccessError("services.get", err)
	}

	details, err := r.hydrate(ctx, []entity.Service{service})
	if err != nil {
		return nil, apperror.NewDataAccessError("services.get", err)
	}
	return &details[0], nil
}

func (r *serviceRepository) List(ctx context.Context, filter domainRepo.ServiceFilter) ([]entity.ServiceWithDetails, error) {
	q, err := table(ctx, r.db, TableServices)
	if err != nil {
		return nil, err
	}

	order, ok := serviceOrders[filter.OrderBy]
	if !ok {
		return nil, apperror.NewBadRequestError("unsupported service ordering: " + filter.OrderBy)
	}

	q = q.Scopes(
		DateScope("service_date", filter.ServiceDate),
		DateScope("next_service_date", filter.NextServiceDate),
	).Order(order)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var services []entity.Service
	if err := q.Find(&services).Error; err != nil {
		return nil, apperror.NewDataAccessError("services.list", err)
	}

	details, err := r.hydrate(ctx, services)
	if err != nil {
		return nil, apperror.NewDataAccessError("services.list", err)
	}
	return details, nil
}

// hydrate resolves vehicle, customer, service type and parts for each service
func (r *serviceRepository) hydrate(ctx context.Context, services []entity.Service) ([]entity.ServiceWithDetails, error) {
	vehicleIDs := make([]uuid.UUID, 0, len(services))
	typeIDs := make([]uuid.UUID, 0, len(services))
	serviceIDs := make([]uuid.UUID, 0, len(services))
	for _, s := range services {
		vehicleIDs = append(vehicleIDs, s.VehicleID)
		typeIDs = append(typeIDs, s.ServiceTypeID)
		serviceIDs = append(serviceIDs, s.ID)
	}

	vehicles, err := vehiclesByID(ctx, r.db, vehicleIDs)
	if err != nil {
		return nil, err
	}
	types, err := serviceTypesByID(ctx, r.db, typeIDs)
	if err != nil {
		return nil, err
	}
	parts, err := servicePartsByService(ctx, r.db, serviceIDs)
	if err != nil {
		return nil, err
	}

	out := make([]entity.ServiceWithDetails, len(services))
	for i, s := range services {
		d := entity.ServiceWithDetails{Service: s, ServiceParts: parts[s.ID]}
		if d.ServiceParts == nil {
			d.ServiceParts = []entity.ServicePartDetail{}
		}
		if v, ok := vehicles[s.VehicleID]; ok {
			v := v
			d.Vehicle = &v
		}
		if st, ok := types[s.ServiceTypeID]; ok {
			st := st
			d.ServiceType = &st
		}
		out[i] = d
	}
	return out, nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	services, err := tenant.Resolve(ctx, TableServices)
	if err != nil {
		return err
	}
	parts, err := tenant.Resolve(ctx, TableServiceParts)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(parts).Where("service_id = ?", id).Delete(&entity.ServicePart{}).Error; err != nil {
			return err
		}
		return tx.Table(services).Where("id = ?", id).Delete(&entity.Service{}).Error
	})
	return apperror.NewDataAccessError("services.delete", err)
}
