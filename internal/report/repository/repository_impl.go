package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/kiranapos/kirana/internal/report/domain"
)

type repository struct{}

// Provide creates the report repository.
func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Totals(ctx context.Context, db *gorm.DB, from, to time.Time) (int, float64, float64, float64, error) {
	var row struct {
		BillCount   int
		TotalAmount float64
		TotalSGST   float64
		TotalCGST   float64
	}

	err := db.WithContext(ctx).
		Table("bills").
		Select("COUNT(*) AS bill_count, COALESCE(SUM(total_amount), 0) AS total_amount, COALESCE(SUM(total_sgst), 0) AS total_sgst, COALESCE(SUM(total_cgst), 0) AS total_cgst").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return row.BillCount, row.TotalAmount, row.TotalSGST, row.TotalCGST, nil
}

func (r *repository) DailySeries(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.DailyPoint, error) {
	var points []domain.DailyPoint
	err := db.WithContext(ctx).
		Table("bills").
		Select("date(created_at) AS date, COUNT(*) AS bill_count, COALESCE(SUM(total_amount), 0) AS amount").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("date(created_at)").
		Order("date(created_at)").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (r *repository) TopItems(ctx context.Context, db *gorm.DB, from, to time.Time, limit int) ([]domain.ItemStat, error) {
	var stats []domain.ItemStat
	err := db.WithContext(ctx).
		Table("bill_items").
		Select("bill_items.item_name AS item_name, bill_items.item_type AS item_type, COALESCE(SUM(bill_items.quantity), 0) AS quantity, COALESCE(SUM(bill_items.final_price), 0) AS revenue").
		Joins("JOIN bills ON bills.id = bill_items.bill_id").
		Where("bills.created_at >= ? AND bills.created_at < ?", from, to).
		Group("bill_items.item_name, bill_items.item_type").
		Order("revenue DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
