// Package domain contains inventory records and service contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind tags a sellable unit as a discrete barcode item or a weighed loose item.
type Kind string

const (
	KindBarcode Kind = "barcode"
	KindLoose   Kind = "loose"
)

// BarcodeItem is a discrete packaged unit scanned by barcode.
//
// TotalPrice (tax inclusive) and the tax percentages are the authoritative
// inputs; BasePrice is always re-derived from them, never the reverse.
type BarcodeItem struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Barcode     string       `gorm:"type:text;not null;uniqueIndex:ux_barcode_items_barcode"`
	Name        string       `gorm:"type:text;not null"`
	HSNCode     string       `gorm:"column:hsn_code;type:text;not null;default:''"`
	SGSTPercent float64      `gorm:"column:sgst_percent;not null;default:0"`
	CGSTPercent float64      `gorm:"column:cgst_percent;not null;default:0"`
	BasePrice   float64      `gorm:"not null;default:0"`
	TotalPrice  float64      `gorm:"not null;default:0"`
	Quantity    int          `gorm:"not null;default:0"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (BarcodeItem) TableName() string { return "barcode_items" }

// LooseCategory groups weighed commodities (e.g. Grains, Spices).
type LooseCategory struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"type:text;not null;uniqueIndex:ux_loose_categories_name"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (LooseCategory) TableName() string { return "loose_categories" }

// LooseItem is a weighed commodity priced per kg. Uniqueness is the
// (category, name, hsn_code) triple.
type LooseItem struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	CategoryID  snowflake.ID `gorm:"not null;uniqueIndex:ux_loose_items_category_name_hsn"`
	Name        string       `gorm:"type:text;not null;uniqueIndex:ux_loose_items_category_name_hsn"`
	HSNCode     string       `gorm:"column:hsn_code;type:text;not null;default:'';uniqueIndex:ux_loose_items_category_name_hsn"`
	SGSTPercent float64      `gorm:"column:sgst_percent;not null;default:0"`
	CGSTPercent float64      `gorm:"column:cgst_percent;not null;default:0"`
	BasePrice   float64      `gorm:"not null;default:0"`
	TotalPrice  float64      `gorm:"not null;default:0"`
	Quantity    int          `gorm:"not null;default:0"`
	ImagePath   string       `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (LooseItem) TableName() string { return "loose_items" }

// Item is the unified tagged record handed to the cart and tax engine.
// There is exactly one shape for both kinds; no key-fallback guessing.
type Item struct {
	Kind        Kind         `json:"kind"`
	ID          snowflake.ID `json:"id"`
	Barcode     string       `json:"barcode,omitempty"`
	Category    string       `json:"category,omitempty"`
	Name        string       `json:"name"`
	HSNCode     string       `json:"hsn_code"`
	SGSTPercent float64      `json:"sgst_percent"`
	CGSTPercent float64      `json:"cgst_percent"`
	BasePrice   float64      `json:"base_price"`
	TotalPrice  float64      `json:"total_price"`
	Quantity    int          `json:"quantity"`
	ImagePath   string       `json:"image_path,omitempty"`
}

// Record converts the persistence row to the unified item shape.
func (b BarcodeItem) Record() Item {
	return Item{
		Kind:        KindBarcode,
		ID:          b.ID,
		Barcode:     b.Barcode,
		Name:        b.Name,
		HSNCode:     b.HSNCode,
		SGSTPercent: b.SGSTPercent,
		CGSTPercent: b.CGSTPercent,
		BasePrice:   b.BasePrice,
		TotalPrice:  b.TotalPrice,
		Quantity:    b.Quantity,
	}
}

// Record converts the persistence row to the unified item shape.
func (l LooseItem) Record(category string) Item {
	return Item{
		Kind:        KindLoose,
		ID:          l.ID,
		Category:    category,
		Name:        l.Name,
		HSNCode:     l.HSNCode,
		SGSTPercent: l.SGSTPercent,
		CGSTPercent: l.CGSTPercent,
		BasePrice:   l.BasePrice,
		TotalPrice:  l.TotalPrice,
		Quantity:    l.Quantity,
		ImagePath:   l.ImagePath,
	}
}
