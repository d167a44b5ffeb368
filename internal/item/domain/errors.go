package domain

import "errors"

var (
	ErrInvalidName       = errors.New("item name is required")
	ErrInvalidBarcode    = errors.New("barcode is required")
	ErrInvalidCategory   = errors.New("category is required")
	ErrInvalidPrice      = errors.New("price must be positive")
	ErrInvalidTaxRate    = errors.New("tax percentages must be non-negative")
	ErrInvalidQuantity   = errors.New("quantity must be non-negative")
	ErrDuplicateBarcode  = errors.New("barcode already exists")
	ErrDuplicateItem     = errors.New("item already exists in this category")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
