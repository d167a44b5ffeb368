package receipt

import (
	"github.com/kiranapos/kirana/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("receipt.service",
	fx.Provide(providePrinter),
	fx.Provide(New),
)

func providePrinter(cfg config.Config, log *zap.Logger) Printer {
	if cfg.PrinterHost == "" {
		return NewNopPrinter(log)
	}
	return NewNetworkPrinter(cfg.PrinterHost, cfg.PrinterPort)
}
