package receipt

import (
	"strings"
	"testing"
	"time"

	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	"github.com/kiranapos/kirana/internal/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDetail() billdomain.Detail {
	created := time.Date(2025, 3, 14, 18, 30, 5, 0, time.UTC)
	return billdomain.Detail{
		Bill: billdomain.Bill{
			ID:            1234,
			CustomerName:  "Asha",
			CustomerPhone: "+919876543210",
			TotalItems:    2,
			TotalWeight:   2.0,
			TotalAmount:   172.50,
			TotalSGST:     8.75,
			TotalCGST:     8.75,
			CreatedAt:     created,
		},
		Items: []billdomain.BillItem{
			{ItemName: "Sugar", ItemType: tax.ItemTypeLoose, Quantity: 2.0, FinalPrice: 84.00},
			{ItemName: "A very long biscuit packet name", ItemType: tax.ItemTypeBarcode, Quantity: 3, FinalPrice: 88.50},
		},
	}
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 24, Columns("58mm"))
	assert.Equal(t, 32, Columns("80mm"))
	assert.Equal(t, 48, Columns("112mm"))
	assert.Equal(t, 32, Columns(""))
	assert.Equal(t, 32, Columns("unknown"))
}

func TestFormat_StandardWidth(t *testing.T) {
	f := NewFormatter("80mm")
	out := f.Format(sampleDetail(), ShopInfo{
		Name: "Kirana Store", Address: "12 Market Rd", Phone: "04412345678",
	})

	assert.Contains(t, out, "Kirana Store")
	assert.Contains(t, out, "Bill ID: 1234")
	assert.Contains(t, out, "Date: 14/03/2025 18:30:05")
	assert.Contains(t, out, "Customer: Asha")
	assert.Contains(t, out, "Phone: +919876543210")
	assert.Contains(t, out, "2.00kg")
	assert.Contains(t, out, "Total Items: 2")
	assert.Contains(t, out, "Total Weight: 2.00kg")
	assert.Contains(t, out, "SGST: Rs8.75")
	assert.Contains(t, out, "TOTAL: Rs172.50")

	// Long names are truncated with an ellipsis marker.
	assert.Contains(t, out, "...")

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 32, "line %q", line)
	}
}

func TestFormat_SeparatorsMatchWidth(t *testing.T) {
	for _, tc := range []struct {
		paper string
		cols  int
	}{
		{"58mm", 24}, {"80mm", 32}, {"112mm", 48},
	} {
		f := NewFormatter(tc.paper)
		out := f.Format(sampleDetail(), ShopInfo{Name: "S"})
		assert.Contains(t, out, strings.Repeat("-", tc.cols))
		assert.NotContains(t, out, strings.Repeat("-", tc.cols+1))

		// Item rows fill the line exactly.
		for _, line := range strings.Split(out, "\n") {
			if strings.Contains(line, "Rs") && !strings.Contains(line, ":") {
				assert.Len(t, line, tc.cols, "paper %s line %q", tc.paper, line)
			}
		}
	}
}

func TestFormat_SkipsEmptyPhoneAndZeroTax(t *testing.T) {
	detail := sampleDetail()
	detail.Bill.CustomerPhone = ""
	detail.Bill.TotalSGST = 0
	detail.Bill.TotalCGST = 0
	detail.Bill.TotalWeight = 0

	f := NewFormatter("80mm")
	out := f.Format(detail, ShopInfo{Name: "S"})

	assert.NotContains(t, out, "Phone: +91")
	assert.NotContains(t, out, "SGST:")
	assert.NotContains(t, out, "Total Weight")
	require.Contains(t, out, "TOTAL: Rs172.50")
}
