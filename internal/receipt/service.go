package receipt

import (
	"context"
	"errors"

	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	settingsdomain "github.com/kiranapos/kirana/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Settings settingsdomain.Service
	Printer  Printer
}

// Service formats and prints receipts for saved bills. Printing is a
// best-effort side effect: a failure is reported to the operator but the
// bill stays saved and can be reprinted.
type Service struct {
	log      *zap.Logger
	settings settingsdomain.Service
	printer  Printer
}

func New(p Params) *Service {
	return &Service{
		log:      p.Log.Named("receipt.service"),
		settings: p.Settings,
		printer:  p.Printer,
	}
}

// Render returns the receipt text for a bill using the configured shop
// identity and paper width.
func (s *Service) Render(ctx context.Context, detail billdomain.Detail) (string, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil && !errors.Is(err, settingsdomain.ErrSettingsNotFound) {
		return "", err
	}

	formatter := NewFormatter(cfg.PaperWidth)
	return formatter.Format(detail, ShopInfo{
		Name:    cfg.ShopName,
		Address: cfg.ShopAddress,
		Phone:   cfg.ShopPhone,
	}), nil
}

// Print renders the bill and sends it to the printer.
func (s *Service) Print(ctx context.Context, detail billdomain.Detail) error {
	text, err := s.Render(ctx, detail)
	if err != nil {
		return err
	}
	if err := s.printer.Print(ctx, text); err != nil {
		s.log.Warn("receipt print failed",
			zap.String("bill_id", detail.Bill.ID.String()), zap.Error(err))
		return err
	}
	s.log.Info("receipt printed", zap.String("bill_id", detail.Bill.ID.String()))
	return nil
}
