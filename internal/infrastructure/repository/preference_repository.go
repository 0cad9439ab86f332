package repository

import (
	"context"
	"errors"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	domainRepo "github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository.
// Preferences are global and never tenant-prefixed.
func NewPreferenceRepository(db *gorm.DB) domainRepo.PreferenceRepository {
	return &preferenceRepository{db: db}
}

// GetPreference retrieves a value by key
func (r *preferenceRepository) GetPreference(ctx context.Context, key string) (string, error) {
	var pref entity.Preference
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", apperror.NewDataAccessError("preferences.get", err)
	}
	return pref.Value, nil
}

// SetPreference inserts or replaces a value
func (r *preferenceRepository) SetPreference(ctx context.Context, key, value string) error {
	pref := entity.Preference{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	return apperror.NewDataAccessError("preferences.set", err)
}
