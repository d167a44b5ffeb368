// Package tax implements the GST price-decomposition and bill-totals engine.
//
// The create-bill screen, inventory editing, receipt formatting and CSV
// import all price through this one package: a user-entered tax-inclusive
// price is decomposed into its pre-tax base, per-line SGST/CGST amounts are
// derived from the base, and bill-level totals aggregate the lines. No
// function here performs I/O or rounds internally; callers round for display
// via the money package.
package tax

import "github.com/kiranapos/kirana/internal/money"

// Item type tags. Loose items are weighed commodities sold per kg;
// barcode items are discrete scanned units.
const (
	ItemTypeBarcode = "barcode"
	ItemTypeLoose   = "loose"
)

// Line is one priced bill entry. BasePrice and the tax percentages are
// snapshots taken when the line was created; the derived amounts are
// recomputed on every quantity or price change.
type Line struct {
	ItemType    string  `json:"item_type"`
	Quantity    float64 `json:"quantity"`
	BasePrice   float64 `json:"base_price"`
	SGSTPercent float64 `json:"sgst_percent"`
	CGSTPercent float64 `json:"cgst_percent"`

	SGSTAmount float64 `json:"sgst_amount"`
	CGSTAmount float64 `json:"cgst_amount"`
	FinalPrice float64 `json:"final_price"`
}

// Totals are bill-level aggregates over a set of lines.
type Totals struct {
	TotalAmount float64 `json:"total_amount"`
	TotalItems  int     `json:"total_items"`
	TotalWeight float64 `json:"total_weight"`
	TotalSGST   float64 `json:"total_sgst"`
	TotalCGST   float64 `json:"total_cgst"`
}

// Averages is the "Avg SGST%/Avg CGST%" display summary.
type Averages struct {
	SGSTPercent float64 `json:"sgst_percent"`
	CGSTPercent float64 `json:"cgst_percent"`
}

// BaseFromFinal back-computes the pre-tax base price from a tax-inclusive
// final price: base = final / (1 + (sgst+cgst)/100).
//
// A combined rate of 0 leaves the divisor at 1, so zero-tax prices pass
// through unchanged. The divisor-zero guard (return 0 instead of dividing)
// is unreachable for non-negative rates but kept deliberately.
func BaseFromFinal(finalPrice, sgstPercent, cgstPercent float64) float64 {
	divisor := 1 + (sgstPercent+cgstPercent)/100
	if divisor == 0 {
		return 0
	}
	return finalPrice / divisor
}

// LineTotals computes the tax breakdown for one line. No rounding is applied;
// the caller rounds at the presentation boundary.
func LineTotals(quantity, basePrice, sgstPercent, cgstPercent float64) (sgstAmount, cgstAmount, finalPrice float64) {
	baseAmount := quantity * basePrice
	sgstAmount = money.PercentageOf(baseAmount, sgstPercent)
	cgstAmount = money.PercentageOf(baseAmount, cgstPercent)
	finalPrice = baseAmount + sgstAmount + cgstAmount
	return sgstAmount, cgstAmount, finalPrice
}

// Recompute refreshes a line's derived amounts from its snapshot fields.
func Recompute(l *Line) {
	l.SGSTAmount, l.CGSTAmount, l.FinalPrice = LineTotals(l.Quantity, l.BasePrice, l.SGSTPercent, l.CGSTPercent)
}

// BillTotals aggregates line-level values into bill totals.
//
// TotalItems counts lines, not quantities: a bill with 5 packets of one
// barcode item and 2.5 kg of one loose item has two items. TotalWeight sums
// quantity over loose lines only.
func BillTotals(lines []Line) Totals {
	var t Totals
	t.TotalItems = len(lines)
	for _, l := range lines {
		t.TotalAmount += l.FinalPrice
		t.TotalSGST += l.SGSTAmount
		t.TotalCGST += l.CGSTAmount
		if l.ItemType == ItemTypeLoose {
			t.TotalWeight += l.Quantity
		}
	}
	return t
}

// AverageRates returns the unweighted mean of per-line percentages over the
// lines with a non-zero rate. The mean is NOT weighted by amount, matching
// the historical display behavior; see DESIGN.md before changing this.
func AverageRates(lines []Line) Averages {
	var a Averages
	var sgstSum, cgstSum float64
	var sgstN, cgstN int
	for _, l := range lines {
		if l.SGSTPercent != 0 {
			sgstSum += l.SGSTPercent
			sgstN++
		}
		if l.CGSTPercent != 0 {
			cgstSum += l.CGSTPercent
			cgstN++
		}
	}
	if sgstN > 0 {
		a.SGSTPercent = sgstSum / float64(sgstN)
	}
	if cgstN > 0 {
		a.CGSTPercent = cgstSum / float64(cgstN)
	}
	return a
}
