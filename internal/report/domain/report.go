// Package domain contains sales report types and service contracts.
package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidRange is returned when the report window is empty or reversed.
var ErrInvalidRange = errors.New("report range is invalid")

// DailyPoint is one day of the revenue series.
type DailyPoint struct {
	Date      string  `json:"date"`
	BillCount int     `json:"bill_count"`
	Amount    float64 `json:"amount"`
}

// ItemStat is one entry of the top-selling items table.
type ItemStat struct {
	ItemName string  `json:"item_name"`
	ItemType string  `json:"item_type"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// Summary is the sales report for a date range.
type Summary struct {
	From        time.Time    `json:"from"`
	To          time.Time    `json:"to"`
	BillCount   int          `json:"bill_count"`
	TotalAmount float64      `json:"total_amount"`
	TotalSGST   float64      `json:"total_sgst"`
	TotalCGST   float64      `json:"total_cgst"`
	Daily       []DailyPoint `json:"daily"`
	TopItems    []ItemStat   `json:"top_items"`
}

// Request bounds a report. TopLimit defaults to 10.
type Request struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	TopLimit int       `json:"top_limit"`
}

// Repository runs the aggregate queries behind a report.
type Repository interface {
	Totals(ctx context.Context, db *gorm.DB, from, to time.Time) (count int, amount, sgst, cgst float64, err error)
	DailySeries(ctx context.Context, db *gorm.DB, from, to time.Time) ([]DailyPoint, error)
	TopItems(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) ([]ItemStat, error)
}

// Service produces sales summaries and their CSV export.
type Service interface {
	Summarize(ctx context.Context, req Request) (*Summary, error)
	ExportCSV(ctx context.Context, req Request, w io.Writer) error
}
