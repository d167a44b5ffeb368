// Package domain contains bill records and service contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kiranapos/kirana/internal/tax"
)

// Bill is a saved, immutable bill. Aggregates are derived from the line
// values at save time and never recomputed afterwards.
type Bill struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerName  string       `gorm:"type:text;not null" json:"customer_name"`
	CustomerPhone string       `gorm:"type:text;not null;default:''" json:"customer_phone"`
	TotalItems    int          `gorm:"not null;default:0" json:"total_items"`
	TotalWeight   float64      `gorm:"not null;default:0" json:"total_weight"`
	TotalAmount   float64      `gorm:"not null;default:0" json:"total_amount"`
	TotalSGST     float64      `gorm:"column:total_sgst;not null;default:0" json:"total_sgst"`
	TotalCGST     float64      `gorm:"column:total_cgst;not null;default:0" json:"total_cgst"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Bill) TableName() string { return "bills" }

// BillItem is one saved bill line. Position preserves insertion order,
// which is also display order on receipts.
type BillItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	BillID      snowflake.ID `gorm:"not null;index:ix_bill_items_bill_id" json:"bill_id"`
	Position    int          `gorm:"not null;default:0" json:"position"`
	ItemName    string       `gorm:"type:text;not null" json:"item_name"`
	HSNCode     string       `gorm:"column:hsn_code;type:text;not null;default:''" json:"hsn_code"`
	ItemType    string       `gorm:"type:text;not null" json:"item_type"`
	Quantity    float64      `gorm:"not null;default:0" json:"quantity"`
	BasePrice   float64      `gorm:"not null;default:0" json:"base_price"`
	SGSTPercent float64      `gorm:"column:sgst_percent;not null;default:0" json:"sgst_percent"`
	CGSTPercent float64      `gorm:"column:cgst_percent;not null;default:0" json:"cgst_percent"`
	SGSTAmount  float64      `gorm:"column:sgst_amount;not null;default:0" json:"sgst_amount"`
	CGSTAmount  float64      `gorm:"column:cgst_amount;not null;default:0" json:"cgst_amount"`
	FinalPrice  float64      `gorm:"not null;default:0" json:"final_price"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (BillItem) TableName() string { return "bill_items" }

// DraftLine is one in-progress bill line before the bill is finalized.
// Price and rates are snapshots from the item at add-to-bill time; later
// inventory edits do not touch an in-progress line.
type DraftLine struct {
	ItemName string `json:"item_name"`
	HSNCode  string `json:"hsn_code"`
	// Barcode identifies the inventory row for stock decrement on save.
	// Empty for loose lines; not persisted with the bill.
	Barcode string `json:"barcode,omitempty"`

	tax.Line
}

// Detail is a bill with its ordered lines.
type Detail struct {
	Bill  Bill       `json:"bill"`
	Items []BillItem `json:"items"`
}

// TaxLines extracts the engine view of the lines.
func TaxLines(lines []DraftLine) []tax.Line {
	out := make([]tax.Line, len(lines))
	for i := range lines {
		out[i] = lines[i].Line
	}
	return out
}
