// Package cart holds the in-progress bill state for the create-bill screen.
//
// A cart owns its draft lines exclusively until the bill is finalized;
// nothing here touches storage. Every mutation recomputes the affected
// line's totals and then the bill totals, so the view a caller reads is
// always consistent.
package cart

import (
	"math"

	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	itemdomain "github.com/kiranapos/kirana/internal/item/domain"
	"github.com/kiranapos/kirana/internal/tax"
)

// Quantity bounds mirror the entry spinbox.
const (
	minQuantity = 0.01
	maxQuantity = 999.99

	looseStep = 0.1
	looseMin  = 0.1

	// Tolerance for the loose merge-on-add price comparison.
	mergePriceTolerance = 0.01
)

// State is a read-only snapshot handed to callers after each mutation.
type State struct {
	Lines    []billdomain.DraftLine `json:"lines"`
	Totals   tax.Totals             `json:"totals"`
	Averages tax.Averages           `json:"averages"`
}

// Cart is a single in-progress bill. Not safe for concurrent use; the
// Manager serializes access.
type Cart struct {
	lines []billdomain.DraftLine
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem adds an inventory item to the bill, merging into an existing line
// when the de-duplication rule matches: barcode lines merge on identical
// barcode, loose lines merge on same name and base price within 0.01.
// Merging sums quantity instead of creating a second line, which keeps
// the total-items count at one per distinct item.
func (c *Cart) AddItem(item itemdomain.Item, quantity float64) error {
	switch item.Kind {
	case itemdomain.KindBarcode:
		if quantity <= 0 {
			quantity = 1
		}
		if quantity != math.Trunc(quantity) || quantity < 1 {
			return billdomain.ErrInvalidQuantity
		}
	case itemdomain.KindLoose:
		if quantity <= 0 {
			quantity = looseMin
		}
		if quantity < minQuantity || quantity > maxQuantity {
			return billdomain.ErrInvalidQuantity
		}
	default:
		return billdomain.ErrInvalidQuantity
	}

	if i := c.findMergeTarget(item); i >= 0 {
		c.lines[i].Quantity += quantity
		tax.Recompute(&c.lines[i].Line)
		return nil
	}

	line := billdomain.DraftLine{
		ItemName: item.Name,
		HSNCode:  item.HSNCode,
		Barcode:  item.Barcode,
		Line: tax.Line{
			ItemType:    string(item.Kind),
			Quantity:    quantity,
			BasePrice:   item.BasePrice,
			SGSTPercent: item.SGSTPercent,
			CGSTPercent: item.CGSTPercent,
		},
	}
	tax.Recompute(&line.Line)
	c.lines = append(c.lines, line)
	return nil
}

func (c *Cart) findMergeTarget(item itemdomain.Item) int {
	for i := range c.lines {
		l := &c.lines[i]
		if string(item.Kind) != l.ItemType {
			continue
		}
		switch item.Kind {
		case itemdomain.KindBarcode:
			if l.Barcode == item.Barcode {
				return i
			}
		case itemdomain.KindLoose:
			if l.ItemName == item.Name && math.Abs(l.BasePrice-item.BasePrice) <= mergePriceTolerance {
				return i
			}
		}
	}
	return -1
}

// IncreaseQty steps a line up: whole units for barcode, 0.1 kg for loose.
func (c *Cart) IncreaseQty(index int) error {
	if index < 0 || index >= len(c.lines) {
		return billdomain.ErrInvalidQuantity
	}
	l := &c.lines[index]
	if l.ItemType == tax.ItemTypeBarcode {
		l.Quantity++
	} else {
		l.Quantity += looseStep
	}
	if l.Quantity > maxQuantity {
		l.Quantity = maxQuantity
	}
	tax.Recompute(&l.Line)
	return nil
}

// DecreaseQty steps a line down, stopping at the minimum (1 unit / 0.1 kg)
// rather than removing the line.
func (c *Cart) DecreaseQty(index int) error {
	if index < 0 || index >= len(c.lines) {
		return billdomain.ErrInvalidQuantity
	}
	l := &c.lines[index]
	if l.ItemType == tax.ItemTypeBarcode {
		if l.Quantity > 1 {
			l.Quantity--
		}
	} else {
		if l.Quantity > looseMin {
			l.Quantity -= looseStep
			if l.Quantity < looseMin {
				l.Quantity = looseMin
			}
		}
	}
	tax.Recompute(&l.Line)
	return nil
}

// SetQty sets a line's quantity directly within the spinbox bounds.
func (c *Cart) SetQty(index int, quantity float64) error {
	if index < 0 || index >= len(c.lines) {
		return billdomain.ErrInvalidQuantity
	}
	if quantity < minQuantity || quantity > maxQuantity {
		return billdomain.ErrInvalidQuantity
	}
	l := &c.lines[index]
	if l.ItemType == tax.ItemTypeBarcode && (quantity != math.Trunc(quantity) || quantity < 1) {
		return billdomain.ErrInvalidQuantity
	}
	l.Quantity = quantity
	tax.Recompute(&l.Line)
	return nil
}

// Remove deletes a line, preserving the order of the rest.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.lines) {
		return billdomain.ErrInvalidQuantity
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Clear drops all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the draft lines in insertion order.
func (c *Cart) Lines() []billdomain.DraftLine {
	out := make([]billdomain.DraftLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Snapshot returns the lines plus current totals and rate averages.
func (c *Cart) Snapshot() State {
	taxLines := billdomain.TaxLines(c.lines)
	return State{
		Lines:    c.Lines(),
		Totals:   tax.BillTotals(taxLines),
		Averages: tax.AverageRates(taxLines),
	}
}
