// Package pdf renders saved bills as PDF documents.
package pdf

import (
	"context"
	"io"

	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	"github.com/kiranapos/kirana/internal/receipt"
	"go.uber.org/fx"
)

// Module provides the PDF renderer.
var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

// Provider renders a bill to PDF for export or sharing.
type Provider interface {
	GenerateBill(ctx context.Context, detail billdomain.Detail, shop receipt.ShopInfo) (io.Reader, error)
	// FileName suggests a slug-safe name for the exported document.
	FileName(detail billdomain.Detail) string
}
