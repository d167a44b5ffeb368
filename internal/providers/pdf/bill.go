package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gosimple/slug"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	"github.com/kiranapos/kirana/internal/money"
	"github.com/kiranapos/kirana/internal/receipt"
	"github.com/kiranapos/kirana/internal/tax"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateBill(ctx context.Context, detail billdomain.Detail, shop receipt.ShopInfo) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	// Shop header
	m.AddRow(10,
		text.NewCol(12, shop.Name, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(12,
		col.New(12).Add(
			text.New(shop.Address, props.Text{Size: 9, Align: align.Center}),
			text.New("Phone: "+shop.Phone, props.Text{Size: 9, Top: 5, Align: align.Center}),
		),
	)

	// Bill meta
	bill := detail.Bill
	m.AddRow(22,
		col.New(6).Add(
			text.New("Bill ID: "+bill.ID.String(), props.Text{Top: 0, Size: 9}),
			text.New("Date: "+bill.CreatedAt.Format("02/01/2006 15:04:05"), props.Text{Top: 5, Size: 9}),
		),
		col.New(6).Add(
			text.New("Customer: "+bill.CustomerName, props.Text{Top: 0, Size: 9}),
			text.New("Phone: "+bill.CustomerPhone, props.Text{Top: 5, Size: 9}),
		),
	)

	// Table header
	m.AddRow(8,
		text.NewCol(4, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "SGST", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "CGST", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range detail.Items {
		qty := fmt.Sprintf("%d", int(item.Quantity))
		if item.ItemType == tax.ItemTypeLoose {
			qty = fmt.Sprintf("%.2fkg", item.Quantity)
		}
		m.AddRow(7,
			text.NewCol(4, item.ItemName, props.Text{Size: 9}),
			text.NewCol(2, qty, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money.FormatCurrency(item.SGSTAmount), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money.FormatCurrency(item.CGSTAmount), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money.FormatCurrency(item.FinalPrice), props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total SGST", props.Text{Size: 9}),
		text.NewCol(2, "Rs "+money.FormatCurrency(bill.TotalSGST), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total CGST", props.Text{Size: 9}),
		text.NewCol(2, "Rs "+money.FormatCurrency(bill.TotalCGST), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Grand Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Rs "+money.FormatCurrency(bill.TotalAmount), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	m.AddRow(12,
		text.NewCol(12, "Thank you, visit again!", props.Text{
			Size:  10,
			Top:   4,
			Align: align.Center,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func (p *PDFProvider) FileName(detail billdomain.Detail) string {
	name := slug.Make(detail.Bill.CustomerName)
	if name == "" {
		name = "bill"
	}
	return fmt.Sprintf("%s-%s.pdf", name, detail.Bill.ID.String())
}
