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

type showroomRepository struct {
	db *gorm.DB
}

// NewShowroomRepository creates a new showroom repository
func NewShowroomRepository(db *gorm.DB) domainRepo.ShowroomRepository {
	return &showroomRepository{db: db}
}

func (r *showroomRepository) Create(ctx context.Context, car *entity.ShowroomCar) error {
	err := showroomTable(ctx, r.db, TableShowroomCars).Create(car).Error
	return apperror.NewDataAccessError("showroom_cars.create", err)
}

func (r *showroomRepository) AddImages(ctx context.Context, images []entity.ShowroomCarImage) error {
	if len(images) == 0 {
		return nil
	}
	err := showroomTable(ctx, r.db, TableShowroomCarImages).Create(&images).Error
	return apperror.NewDataAccessError("showroom_car_images.create", err)
}

func (r *showroomRepository) Update(ctx context.Context, car *entity.ShowroomCar) error {
	err := showroomTable(ctx, r.db, TableShowroomCars).Save(car).Error
	return apperror.NewDataAccessError("showroom_cars.update", err)
}

func (r *showroomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ShowroomCarWithImages, error) {
	var car entity.ShowroomCar
	err := showroomTable(ctx, r.db, TableShowroomCars).First(&car, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewDataAccessError("showroom_cars.get", err)
	}

	images, err := r.imagesByCar(ctx, []uuid.UUID{car.ID})
	if err != nil {
		return nil, apperror.NewDataAccessError("showroom_cars.get", err)
	}
	return &entity.ShowroomCarWithImages{ShowroomCar: car, Images: nonNilImages(images[car.ID])}, nil
}

func (r *showroomRepository) List(ctx context.Context) ([]entity.ShowroomCarWithImages, error) {
	var cars []entity.ShowroomCar
	err := showroomTable(ctx, r.db, TableShowroomCars).
		Order("is_featured DESC").
		Order("created_at DESC").
		Find(&cars).Error
	if err != nil {
		return nil, apperror.NewDataAccessError("showroom_cars.list", err)
	}

	ids := make([]uuid.UUID, 0, len(cars))
	for _, c := range cars {
		ids = append(ids, c.ID)
	}
	images, err := r.imagesByCar(ctx, ids)
	if err != nil {
		return nil, apperror.NewDataAccessError("showroom_cars.list", err)
	}

	out := make([]entity.ShowroomCarWithImages, len(cars))
	for i, c := range cars {
		out[i] = entity.ShowroomCarWithImages{ShowroomCar: c, Images: nonNilImages(images[c.ID])}
	}
	return out, nil
}

func (r *showroomRepository) imagesByCar(ctx context.Context, carIDs []uuid.UUID) (map[uuid.UUID][]entity.ShowroomCarImage, error) {
	out := make(map[uuid.UUID][]entity.ShowroomCarImage)
	carIDs = uniqueIDs(carIDs)
	if len(carIDs) == 0 {
		return out, nil
	}
	var rows []entity.ShowroomCarImage
	err := showroomTable(ctx, r.db, TableShowroomCarImages).
		Where("car_id IN ?", carIDs).
		Order("display_order ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, img := range rows {
		out[img.CarID] = append(out[img.CarID], img)
	}
	return out, nil
}

func (r *showroomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cars := tenant.TableName(tenant.Elite, TableShowroomCars)
	images := tenant.TableName(tenant.Elite, TableShowroomCarImages)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(images).Where("car_id = ?", id).Delete(&entity.ShowroomCarImage{}).Error; err != nil {
			return err
		}
		return tx.Table(cars).Where("id = ?", id).Delete(&entity.ShowroomCar{}).Error
	})
	return apperror.NewDataAccessError("showroom_cars.delete", err)
}

func (r *showroomRepository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	err := showroomTable(ctx, r.db, TableShowroomCarImages).
		Where("id = ?", id).
		Delete(&entity.ShowroomCarImage{}).Error
	return apperror.NewDataAccessError("showroom_car_images.delete", err)
}

func nonNilImages(images []entity.ShowroomCarImage) []entity.ShowroomCarImage {
	if images == nil {
		return []entity.ShowroomCarImage{}
	}
	return images
}
