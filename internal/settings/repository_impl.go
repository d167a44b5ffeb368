package settings

import (
	"context"
	"errors"

	"github.com/kiranapos/kirana/internal/settings/domain"
	"gorm.io/gorm"
)

type repo struct{}

// ProvideRepository returns the gorm-backed settings repository.
func ProvideRepository() domain.Repository {
	return &repo{}
}

func (r *repo) Find(ctx context.Context, db *gorm.DB) (*domain.AdminSettings, error) {
	var settings domain.AdminSettings
	err := db.WithContext(ctx).Order("id asc").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, settings *domain.AdminSettings) error {
	return db.WithContext(ctx).Save(settings).Error
}
