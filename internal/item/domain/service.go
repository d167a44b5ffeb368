package domain

import (
	"context"
	"io"
)

// Service is the inventory management surface.
//
// Every write path re-derives BasePrice from TotalPrice and the tax
// percentages through the tax engine; callers never supply a base price.
type Service interface {
	AddBarcodeItem(ctx context.Context, req UpsertBarcodeItemRequest) (Item, error)
	UpdateBarcodeItem(ctx context.Context, id string, req UpsertBarcodeItemRequest) (Item, error)
	DeleteBarcodeItem(ctx context.Context, id string) error
	GetByBarcode(ctx context.Context, barcode string) (Item, error)
	ListBarcodeItems(ctx context.Context) ([]Item, error)

	// GetItem resolves one inventory item by kind and ID.
	GetItem(ctx context.Context, kind Kind, id string) (Item, error)

	AddCategory(ctx context.Context, name string) (LooseCategory, error)
	ListCategories(ctx context.Context) ([]LooseCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	AddLooseItem(ctx context.Context, req UpsertLooseItemRequest) (Item, error)
	UpdateLooseItem(ctx context.Context, id string, req UpsertLooseItemRequest) (Item, error)
	DeleteLooseItem(ctx context.Context, id string) error
	ListLooseItems(ctx context.Context, category string) ([]Item, error)

	// DecrementBarcodeStock reduces on-hand stock after a bill save.
	// Stock never goes below zero; short stock is clamped, not an error.
	DecrementBarcodeStock(ctx context.Context, barcode string, quantity int) error

	ImportBarcodeCSV(ctx context.Context, r io.Reader) (ImportReport, error)
	ImportLooseCSV(ctx context.Context, r io.Reader) (ImportReport, error)
}

// UpsertBarcodeItemRequest carries operator input for a barcode item.
// TotalPrice is the tax-inclusive shelf price.
type UpsertBarcodeItemRequest struct {
	Barcode     string  `json:"barcode"`
	Name        string  `json:"name"`
	HSNCode     string  `json:"hsn_code"`
	SGSTPercent float64 `json:"sgst_percent"`
	CGSTPercent float64 `json:"cgst_percent"`
	TotalPrice  float64 `json:"total_price"`
	Quantity    int     `json:"quantity"`
}

// UpsertLooseItemRequest carries operator input for a loose item.
// TotalPrice is the tax-inclusive price per kg.
type UpsertLooseItemRequest struct {
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	HSNCode     string  `json:"hsn_code"`
	SGSTPercent float64 `json:"sgst_percent"`
	CGSTPercent float64 `json:"cgst_percent"`
	TotalPrice  float64 `json:"total_price"`
	Quantity    int     `json:"quantity"`
	ImagePath   string  `json:"image_path"`
}

// ImportReport summarizes a CSV import. Bad rows are skipped and reported
// individually; they never fail the batch.
type ImportReport struct {
	Imported int         `json:"imported"`
	Skipped  []SkipEntry `json:"skipped"`
}

// SkipEntry names one rejected CSV row. Row numbers are 1-based and include
// the header row, matching what an operator sees in a spreadsheet.
type SkipEntry struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
