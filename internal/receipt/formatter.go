// Package receipt renders saved bills as thermal-printer text.
package receipt

import (
	"fmt"
	"strings"

	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	"github.com/kiranapos/kirana/internal/money"
	settingsdomain "github.com/kiranapos/kirana/internal/settings/domain"
	"github.com/kiranapos/kirana/internal/tax"
)

// ShopInfo is the receipt header block.
type ShopInfo struct {
	Name    string
	Address string
	Phone   string
}

// Columns maps a paper width to its character line width.
// Unknown widths fall back to the standard 80mm roll.
func Columns(paperWidth string) int {
	switch paperWidth {
	case settingsdomain.PaperWidth58:
		return 24
	case settingsdomain.PaperWidth112:
		return 48
	default:
		return 32
	}
}

// Formatter lays out a bill for a fixed line width.
type Formatter struct {
	cols int
}

// NewFormatter returns a formatter for the given paper width.
func NewFormatter(paperWidth string) *Formatter {
	return &Formatter{cols: Columns(paperWidth)}
}

// Format renders the complete receipt. All amounts are rounded here, at
// the presentation boundary.
func (f *Formatter) Format(detail billdomain.Detail, shop ShopInfo) string {
	var b strings.Builder
	sep := strings.Repeat("-", f.cols) + "\n"

	b.WriteString(f.center(shop.Name))
	b.WriteString(f.center(shop.Address))
	b.WriteString(f.center("Phone: " + shop.Phone))
	b.WriteString(sep)

	bill := detail.Bill
	b.WriteString(fmt.Sprintf("Bill ID: %s\n", bill.ID))
	b.WriteString(fmt.Sprintf("Date: %s\n", bill.CreatedAt.Format("02/01/2006 15:04:05")))
	b.WriteString(fmt.Sprintf("Customer: %s\n", bill.CustomerName))
	if bill.CustomerPhone != "" {
		b.WriteString(fmt.Sprintf("Phone: %s\n", bill.CustomerPhone))
	}
	b.WriteString(sep)

	// name + space + qty(8) + space + price(8) fills the line exactly.
	nameW := f.cols - 18
	b.WriteString(fmt.Sprintf("%-*s %-8s %8s\n", nameW, "Item", "Qty", "Price"))
	b.WriteString(sep)

	for _, item := range detail.Items {
		name := item.ItemName
		if len(name) > nameW {
			name = name[:nameW-3] + "..."
		}

		qty := fmt.Sprintf("%.2f", item.Quantity)
		if item.ItemType == tax.ItemTypeLoose {
			qty += "kg"
		}

		price := "Rs" + money.FormatCurrency(item.FinalPrice)
		b.WriteString(fmt.Sprintf("%-*s %-8s %8s\n", nameW, name, qty, price))
	}
	b.WriteString(sep)

	b.WriteString(fmt.Sprintf("Total Items: %d\n", bill.TotalItems))
	if bill.TotalWeight > 0 {
		b.WriteString(fmt.Sprintf("Total Weight: %.2fkg\n", bill.TotalWeight))
	}
	if bill.TotalSGST > 0 || bill.TotalCGST > 0 {
		b.WriteString(fmt.Sprintf("SGST: Rs%s\n", money.FormatCurrency(bill.TotalSGST)))
		b.WriteString(fmt.Sprintf("CGST: Rs%s\n", money.FormatCurrency(bill.TotalCGST)))
	}
	b.WriteString(fmt.Sprintf("TOTAL: Rs%s\n", money.FormatCurrency(bill.TotalAmount)))
	b.WriteString(sep)

	b.WriteString(f.center("Thank you, visit again!"))
	return b.String()
}

func (f *Formatter) center(text string) string {
	if text == "" {
		return "\n"
	}
	if len(text) >= f.cols {
		return text + "\n"
	}
	pad := (f.cols - len(text)) / 2
	return strings.Repeat(" ", pad) + text + "\n"
}
