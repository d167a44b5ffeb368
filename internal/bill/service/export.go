package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/kiranapos/kirana/internal/bill/domain"
	"github.com/kiranapos/kirana/internal/money"
	"go.uber.org/zap"
)

// Canonical bill-history export columns. Historical builds emitted several
// ad hoc shapes; this is the one shape the application now writes.
var exportHeader = []string{
	"bill_id", "customer_name", "customer_phone", "created_at",
	"total_items", "total_weight", "total_sgst", "total_cgst", "total_amount",
}

var exportLineHeader = append(append([]string{}, exportHeader...),
	"item_name", "hsn_code", "item_type", "quantity",
	"sgst_amount", "cgst_amount", "final_price",
)

// ExportCSV writes the bill history for the requested range. Amounts are
// rounded to two decimals here, at the presentation boundary.
func (s *Service) ExportCSV(ctx context.Context, req domain.ExportRequest, w io.Writer) error {
	bills, err := s.repo.ListRange(ctx, s.db, req.From, req.To)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := exportHeader
	if req.IncludeLines {
		header = exportLineHeader
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, bill := range bills {
		base := []string{
			bill.ID.String(),
			bill.CustomerName,
			bill.CustomerPhone,
			bill.CreatedAt.Format(time.RFC3339),
			strconv.Itoa(bill.TotalItems),
			money.FormatCurrency(bill.TotalWeight),
			money.FormatCurrency(bill.TotalSGST),
			money.FormatCurrency(bill.TotalCGST),
			money.FormatCurrency(bill.TotalAmount),
		}

		if !req.IncludeLines {
			if err := writer.Write(base); err != nil {
				return err
			}
			continue
		}

		items, err := s.repo.ListItems(ctx, s.db, bill.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			row := append(append([]string{}, base...),
				item.ItemName,
				item.HSNCode,
				item.ItemType,
				money.FormatCurrency(item.Quantity),
				money.FormatCurrency(item.SGSTAmount),
				money.FormatCurrency(item.CGSTAmount),
				money.FormatCurrency(item.FinalPrice),
			)
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	s.log.Info("bill history exported",
		zap.Int("bills", len(bills)),
		zap.Time("from", req.From), zap.Time("to", req.To))
	return nil
}
