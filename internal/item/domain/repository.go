package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the persistence boundary for inventory rows.
type Repository interface {
	InsertBarcode(ctx context.Context, db *gorm.DB, item *BarcodeItem) error
	FindBarcode(ctx context.Context, db *gorm.DB, barcode string) (*BarcodeItem, error)
	FindBarcodeByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*BarcodeItem, error)
	ListBarcode(ctx context.Context, db *gorm.DB) ([]*BarcodeItem, error)
	UpdateBarcode(ctx context.Context, db *gorm.DB, item *BarcodeItem) error
	DeleteBarcode(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	AdjustBarcodeStock(ctx context.Context, db *gorm.DB, barcode string, delta int) error

	InsertCategory(ctx context.Context, db *gorm.DB, category *LooseCategory) error
	ListCategories(ctx context.Context, db *gorm.DB) ([]*LooseCategory, error)
	FindCategoryByName(ctx context.Context, db *gorm.DB, name string) (*LooseCategory, error)
	FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*LooseCategory, error)
	DeleteCategory(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	InsertLoose(ctx context.Context, db *gorm.DB, item *LooseItem) error
	FindLooseByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*LooseItem, error)
	ListLooseByCategory(ctx context.Context, db *gorm.DB, categoryID snowflake.ID) ([]*LooseItem, error)
	ListLoose(ctx context.Context, db *gorm.DB) ([]*LooseItem, error)
	UpdateLoose(ctx context.Context, db *gorm.DB, item *LooseItem) error
	DeleteLoose(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
