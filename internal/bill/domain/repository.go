package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kiranapos/kirana/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListFilter narrows a bill history listing.
type ListFilter struct {
	CustomerName string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// Repository is the persistence boundary for saved bills.
type Repository interface {
	InsertBill(ctx context.Context, db *gorm.DB, bill *Bill) error
	InsertItems(ctx context.Context, db *gorm.DB, items []BillItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Bill, error)
	ListItems(ctx context.Context, db *gorm.DB, billID snowflake.ID) ([]BillItem, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Bill, error)
	ListRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]*Bill, error)
}
