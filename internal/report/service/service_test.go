package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	domain "github.com/kiranapos/kirana/internal/report/domain"
	reportrepo "github.com/kiranapos/kirana/internal/report/repository"
	"github.com/kiranapos/kirana/internal/tax"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&billdomain.Bill{}, &billdomain.BillItem{}))

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: reportrepo.Provide(),
	})
	return svc, db
}

func seedBills(t *testing.T, db *gorm.DB) {
	t.Helper()

	day1 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	bills := []billdomain.Bill{
		{ID: 1, CustomerName: "Asha", TotalItems: 1, TotalAmount: 84.00, TotalSGST: 2.00, TotalCGST: 2.00, CreatedAt: day1},
		{ID: 2, CustomerName: "Ravi", TotalItems: 1, TotalAmount: 88.50, TotalSGST: 6.75, TotalCGST: 6.75, CreatedAt: day1.Add(2 * time.Hour)},
		{ID: 3, CustomerName: "Asha", TotalItems: 1, TotalAmount: 42.00, TotalSGST: 1.00, TotalCGST: 1.00, CreatedAt: day2},
	}
	require.NoError(t, db.Create(&bills).Error)

	items := []billdomain.BillItem{
		{ID: 11, BillID: 1, ItemName: "Sugar", ItemType: tax.ItemTypeLoose, Quantity: 2.0, FinalPrice: 84.00, CreatedAt: day1},
		{ID: 12, BillID: 2, ItemName: "Soap", ItemType: tax.ItemTypeBarcode, Quantity: 3, FinalPrice: 88.50, CreatedAt: day1},
		{ID: 13, BillID: 3, ItemName: "Sugar", ItemType: tax.ItemTypeLoose, Quantity: 1.0, FinalPrice: 42.00, CreatedAt: day2},
	}
	require.NoError(t, db.Create(&items).Error)
}

func TestSummarize(t *testing.T) {
	svc, db := newTestService(t)
	seedBills(t, db)

	summary, err := svc.Summarize(context.Background(), domain.Request{
		From: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.BillCount)
	assert.InDelta(t, 214.50, summary.TotalAmount, 1e-9)
	assert.InDelta(t, 9.75, summary.TotalSGST, 1e-9)
	assert.InDelta(t, 9.75, summary.TotalCGST, 1e-9)

	require.Len(t, summary.Daily, 2)
	assert.Equal(t, "2025-03-14", summary.Daily[0].Date)
	assert.Equal(t, 2, summary.Daily[0].BillCount)
	assert.InDelta(t, 172.50, summary.Daily[0].Amount, 1e-9)
	assert.Equal(t, "2025-03-15", summary.Daily[1].Date)
	assert.InDelta(t, 42.00, summary.Daily[1].Amount, 1e-9)

	// Sugar outsells Soap on revenue across the range.
	require.Len(t, summary.TopItems, 2)
	assert.Equal(t, "Sugar", summary.TopItems[0].ItemName)
	assert.InDelta(t, 126.00, summary.TopItems[0].Revenue, 1e-9)
	assert.InDelta(t, 3.0, summary.TopItems[0].Quantity, 1e-9)
	assert.Equal(t, "Soap", summary.TopItems[1].ItemName)
}

func TestSummarize_RangeFilters(t *testing.T) {
	svc, db := newTestService(t)
	seedBills(t, db)

	summary, err := svc.Summarize(context.Background(), domain.Request{
		From: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.BillCount)
	assert.InDelta(t, 42.00, summary.TotalAmount, 1e-9)
	require.Len(t, summary.TopItems, 1)
	assert.Equal(t, "Sugar", summary.TopItems[0].ItemName)
}

func TestSummarize_InvalidRange(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Summarize(context.Background(), domain.Request{
		From: time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestExportCSV(t *testing.T) {
	svc, db := newTestService(t)
	seedBills(t, db)

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), domain.Request{
		From: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
	}, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "date,bill_count,amount")
	assert.Contains(t, out, "2025-03-14,2,172.50")
	assert.Contains(t, out, "item_name,item_type,quantity,revenue")
	assert.Contains(t, out, "Sugar,loose,3.00,126.00")
}
