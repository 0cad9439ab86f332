package repository

import (
	"context"
	"errors"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	domainRepo "github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sparePartRepository struct {
	db *gorm.DB
}

// NewSparePartRepository creates a new spare part repository
func NewSparePartRepository(db *gorm.DB) domainRepo.SparePartRepository {
	return &sparePartRepository{db: db}
}

func (r *sparePartRepository) Create(ctx context.Context, part *entity.SparePart) error {
	q, err := table(ctx, r.db, TableSpareParts)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("spare_parts.create", q.Create(part).Error)
}

func (r *sparePartRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SparePart, error) {
	q, err := table(ctx, r.db, TableSpareParts)
	if err != nil {
		return nil, err
	}
	var part entity.SparePart
	err = q.First(&part, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewDataAccessError("spare_parts.get", err)
	}
	return &part, nil
}

func (r *sparePartRepository) Update(ctx context.Context, part *entity.SparePart) error {
	q, err := table(ctx, r.db, TableSpareParts)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("spare_parts.update", q.Save(part).Error)
}

func (r *sparePartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := table(ctx, r.db, TableSpareParts)
	if err != nil {
		return err
	}
	return apperror.NewDataAccessError("spare_parts.delete", q.Where("id = ?", id).Delete(&entity.SparePart{}).Error)
}

func (r *sparePartRepository) List(ctx context.Context, search string) ([]entity.SparePart, error) {
	q, err := table(ctx, r.db, TableSpareParts)
	if err != nil {
		return nil, err
	}
	var parts []entity.SparePart
	err = q.Scopes(SearchScope(search, "part_name", "part_number")).
		Order("created_at DESC").
		Find(&parts).Error
	if err != nil {
		return nil, apperror.NewDataAccessError("spare_parts.list", err)
	}
	return parts, nil
}

func (r *sparePartRepository) ListLowStock(ctx context.Context) ([]entity.SparePart, error) {
	q, err := table(ctx, r.db, TableSpareParts)
	if err != nil {
		return nil, err
	}
	var parts []entity.SparePart
	err = q.Where("quantity_in_stock <= reorder_threshold").
		Order("quantity_in_stock ASC").
		Find(&parts).Error
	if err != nil {
		return nil, apperror.NewDataAccessError("spare_parts.low_stock", err)
	}
	return parts, nil
}

func (r *sparePartRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entity.SparePart, error) {
	q, err := table(ctx, r.db, TableSpareParts)
	if err != nil {
		return nil, err
	}
	res := q.Where("id = ?", id).
		UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", delta))
	if res.Error != nil {
		return nil, apperror.NewDataAccessError("spare_parts.adjust_stock", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}
