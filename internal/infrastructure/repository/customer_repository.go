package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	domainRepo "github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	q, err := table(ctx, r.db, TableCustomers)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("customers.create", q.Create(customer).Error)
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	q, err := table(ctx, r.db, TableCustomers)
	if err != nil {
		return nil, err
	}
	var customer entity.Customer
	err = q.First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewDataAccessError("customers.get", err)
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	q, err := table(ctx, r.db, TableCustomers)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("customers.update", q.Save(customer).Error)
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	customers, err := tenant.Resolve(ctx, TableCustomers)
	if err != nil {
		return err
	}
	vehicles, err := tenant.Resolve(ctx, TableVehicles)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(vehicles).Where("customer_id = ?", id).Delete(&entity.Vehicle{}).Error; err != nil {
			return err
		}
		return tx.Table(customers).Where("id = ?", id).Delete(&entity.Customer{}).Error
	})
	return apperror.NewDataAccessError("customers.delete", err)
}

func (r *customerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	q, err := table(ctx, r.db, TableCustomers)
	if err != nil {
		return nil, err
	}
	var customers []entity.Customer
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, apperror.NewDataAccessError("customers.list", err)
	}
	return customers, nil
}

func (r *customerRepository) ListWithVehicles(ctx context.Context) ([]entity.CustomerWithVehicles, error) {
	q, err := table(ctx, r.db, TableVehicles)
	if err != nil {
		return nil, err
	}
	var vehicles []entity.Vehicle
	if err := q.Order("created_at ASC").Find(&vehicles).Error; err != nil {
		return nil, apperror.NewDataAccessError("customers.list_with_vehicles", err)
	}

	ownerIDs := make([]uuid.UUID, 0, len(vehicles))
	for _, v := range vehicles {
		ownerIDs = append(ownerIDs, v.CustomerID)
	}
	owners, err := customersByID(ctx, r.db, ownerIDs)
	if err != nil {
		return nil, apperror.NewDataAccessError("customers.list_with_vehicles", err)
	}

	grouped := make(map[uuid.UUID]*entity.CustomerWithVehicles)
	for _, v := range vehicles {
		owner, ok := owners[v.CustomerID]
		if !ok {
			continue
		}
		cv, ok := grouped[owner.ID]
		if !ok {
			cv = &entity.CustomerWithVehicles{Customer: owner}
			grouped[owner.ID] = cv
		}
		cv.Vehicles = append(cv.Vehicles, v)
	}

	result := make([]entity.CustomerWithVehicles, 0, len(grouped))
	for _, cv := range grouped {
		result = append(result, *cv)
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := strings.ToLower(result[i].Name), strings.ToLower(result[j].Name)
		if a == b {
			return result[i].ID.String() < result[j].ID.String()
		}
		return a < b
	})
	return result, nil
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) domainRepo.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	q, err := table(ctx, r.db, TableVehicles)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("vehicles.create", q.Create(vehicle).Error)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	q, err := table(ctx, r.db, TableVehicles)
	if err != nil {
		return nil, err
	}
	var vehicle entity.Vehicle
	err = q.First(&vehicle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewDataAccessError("vehicles.get", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Vehicle, error) {
	q, err := table(ctx, r.db, TableVehicles)
	if err != nil {
		return nil, err
	}
	var vehicles []entity.Vehicle
	if err := q.Where("customer_id = ?", customerID).Order("created_at ASC").Find(&vehicles).Error; err != nil {
		return nil, apperror.NewDataAccessError("vehicles.list", err)
	}
	return vehicles, nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := table(ctx, r.db, TableVehicles)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("vehicles.delete", q.Where("id = ?", id).Delete(&entity.Vehicle{}).Error)
}
