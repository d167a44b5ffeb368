package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kiranapos/kirana/internal/bill/domain"
	billrepo "github.com/kiranapos/kirana/internal/bill/repository"
	itemdomain "github.com/kiranapos/kirana/internal/item/domain"
	"github.com/kiranapos/kirana/internal/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// itemServiceStub records stock decrements; other methods are never called.
type itemServiceStub struct {
	itemdomain.Service
	decrements map[string]int
}

func (s *itemServiceStub) DecrementBarcodeStock(_ context.Context, barcode string, quantity int) error {
	if s.decrements == nil {
		s.decrements = make(map[string]int)
	}
	s.decrements[barcode] += quantity
	return nil
}

func newTestService(t *testing.T) (*Service, *itemServiceStub) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Bill{}, &domain.BillItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	items := &itemServiceStub{}
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  billrepo.Provide(),
		Items: items,
	})
	return svc.(*Service), items
}

func draftLines() []domain.DraftLine {
	lines := []domain.DraftLine{
		{
			ItemName: "Sugar",
			Line: tax.Line{
				ItemType: tax.ItemTypeLoose, Quantity: 2.0,
				BasePrice: 40.00, SGSTPercent: 2.5, CGSTPercent: 2.5,
			},
		},
		{
			ItemName: "Soap",
			Barcode:  "8901234567890",
			Line: tax.Line{
				ItemType: tax.ItemTypeBarcode, Quantity: 3,
				BasePrice: 25.00, SGSTPercent: 9, CGSTPercent: 9,
			},
		},
	}
	return lines
}

func TestFinalize_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Finalize(ctx, domain.FinalizeRequest{CustomerName: " ", Lines: draftLines()})
	assert.ErrorIs(t, err, domain.ErrInvalidCustomerName)

	_, err = svc.Finalize(ctx, domain.FinalizeRequest{CustomerName: "Asha"})
	assert.ErrorIs(t, err, domain.ErrEmptyBill)

	_, err = svc.Finalize(ctx, domain.FinalizeRequest{
		CustomerName: "Asha", CustomerPhone: "12345", Lines: draftLines(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
}

func TestFinalize_SavesAndDecrementsStock(t *testing.T) {
	svc, items := newTestService(t)
	ctx := context.Background()

	detail, err := svc.Finalize(ctx, domain.FinalizeRequest{
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		Lines:         draftLines(),
	})
	require.NoError(t, err)

	assert.Equal(t, "+919876543210", detail.Bill.CustomerPhone)
	assert.Equal(t, 2, detail.Bill.TotalItems)
	assert.InDelta(t, 2.0, detail.Bill.TotalWeight, 1e-9)
	// Sugar: 84.00, Soap: 3*25*1.18 = 88.50
	assert.InDelta(t, 172.50, detail.Bill.TotalAmount, 1e-9)
	assert.InDelta(t, 2.00+6.75, detail.Bill.TotalSGST, 1e-9)

	assert.Equal(t, 3, items.decrements["8901234567890"])

	// Saved bills read back with lines in insertion order.
	got, err := svc.GetByID(ctx, detail.Bill.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Sugar", got.Items[0].ItemName)
	assert.Equal(t, "Soap", got.Items[1].ItemName)
	assert.InDelta(t, detail.Bill.TotalAmount, got.Bill.TotalAmount, 1e-9)
}

func TestFinalize_RecomputesDerivedAmounts(t *testing.T) {
	svc, _ := newTestService(t)

	lines := draftLines()
	// Tampered derived values must be ignored in favor of the engine.
	lines[0].FinalPrice = 1
	lines[0].SGSTAmount = 99

	detail, err := svc.Finalize(context.Background(), domain.FinalizeRequest{
		CustomerName: "Asha", Lines: lines,
	})
	require.NoError(t, err)
	assert.InDelta(t, 84.00, detail.Items[0].FinalPrice, 1e-9)
	assert.InDelta(t, 2.00, detail.Items[0].SGSTAmount, 1e-9)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetByID(context.Background(), "123456789")
	assert.ErrorIs(t, err, domain.ErrBillNotFound)

	_, err = svc.GetByID(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, domain.ErrBillNotFound)
}

func TestList_SearchByCustomer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Asha Patel", "Binod", "Asha Rao"} {
		_, err := svc.Finalize(ctx, domain.FinalizeRequest{CustomerName: name, Lines: draftLines()})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListRequest{CustomerName: "Asha"})
	require.NoError(t, err)
	assert.Len(t, resp.Bills, 2)

	resp, err = svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Bills, 3)
	assert.False(t, resp.PageInfo.HasMore)
}

func TestExportCSV(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Finalize(ctx, domain.FinalizeRequest{CustomerName: "Asha", Lines: draftLines()})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = svc.ExportCSV(ctx, domain.ExportRequest{
		From: time.Now().Add(-time.Hour),
		To:   time.Now().Add(time.Hour),
	}, &buf)
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "bill_id,customer_name")
	assert.Contains(t, lines[1], "Asha")
	assert.Contains(t, lines[1], "172.50")

	// Per-line variant carries one row per bill item.
	buf.Reset()
	err = svc.ExportCSV(ctx, domain.ExportRequest{
		From: time.Now().Add(-time.Hour), To: time.Now().Add(time.Hour), IncludeLines: true,
	}, &buf)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Sugar")
	assert.Contains(t, lines[2], "Soap")
}
