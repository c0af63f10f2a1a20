package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hireflowhq/hireflow-api/internal/models"
)

const settingsRowID = 1

// SettingsRepository reads and writes the HR settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (models.HRSettings, error)
	Save(ctx context.Context, settings *models.HRSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository instantiates a GORM-backed settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the singleton row, creating it with defaults on first access.
func (r *settingsRepository) Get(ctx context.Context) (models.HRSettings, error) {
	settings := models.HRSettings{ID: settingsRowID}
	err := r.db.WithContext(ctx).
		Where("id = ?", settingsRowID).
		FirstOrCreate(&settings).Error
	if err != nil {
		return models.HRSettings{}, err
	}
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.HRSettings) error {
	settings.ID = settingsRowID
	return r.db.WithContext(ctx).Save(settings).Error
}
