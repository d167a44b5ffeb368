package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/kiranapos/kirana/internal/item/domain"
	"gorm.io/gorm"
)

type repo struct{}

// Provide returns the gorm-backed inventory repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertBarcode(ctx context.Context, db *gorm.DB, item *domain.BarcodeItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindBarcode(ctx context.Context, db *gorm.DB, barcode string) (*domain.BarcodeItem, error) {
	var item domain.BarcodeItem
	err := db.WithContext(ctx).Where("barcode = ?", barcode).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindBarcodeByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.BarcodeItem, error) {
	var item domain.BarcodeItem
	err := db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) ListBarcode(ctx context.Context, db *gorm.DB) ([]*domain.BarcodeItem, error) {
	var items []*domain.BarcodeItem
	err := db.WithContext(ctx).Order("name asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateBarcode(ctx context.Context, db *gorm.DB, item *domain.BarcodeItem) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *repo) DeleteBarcode(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.BarcodeItem{}, "id = ?", id).Error
}

func (r *repo) AdjustBarcodeStock(ctx context.Context, db *gorm.DB, barcode string, delta int) error {
	// max(quantity + delta, 0): stock is clamped at zero on oversell.
	return db.WithContext(ctx).Exec(
		`UPDATE barcode_items
		 SET quantity = MAX(quantity + ?, 0), updated_at = CURRENT_TIMESTAMP
		 WHERE barcode = ?`,
		delta, barcode,
	).Error
}

func (r *repo) InsertCategory(ctx context.Context, db *gorm.DB, category *domain.LooseCategory) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]*domain.LooseCategory, error) {
	var categories []*domain.LooseCategory
	err := db.WithContext(ctx).Order("name asc").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) FindCategoryByName(ctx context.Context, db *gorm.DB, name string) (*domain.LooseCategory, error) {
	var category domain.LooseCategory
	err := db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repo) FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.LooseCategory, error) {
	var category domain.LooseCategory
	err := db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repo) DeleteCategory(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.LooseCategory{}, "id = ?", id).Error
}

func (r *repo) InsertLoose(ctx context.Context, db *gorm.DB, item *domain.LooseItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindLooseByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.LooseItem, error) {
	var item domain.LooseItem
	err := db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) ListLooseByCategory(ctx context.Context, db *gorm.DB, categoryID snowflake.ID) ([]*domain.LooseItem, error) {
	var items []*domain.LooseItem
	err := db.WithContext(ctx).Where("category_id = ?", categoryID).Order("name asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListLoose(ctx context.Context, db *gorm.DB) ([]*domain.LooseItem, error) {
	var items []*domain.LooseItem
	err := db.WithContext(ctx).Order("category_id asc, name asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateLoose(ctx context.Context, db *gorm.DB, item *domain.LooseItem) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *repo) DeleteLoose(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.LooseItem{}, "id = ?", id).Error
}
