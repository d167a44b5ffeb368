package message

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	"github.com/kiranapos/kirana/internal/config"
	"github.com/kiranapos/kirana/internal/money"
)

var (
	// ErrSendInFlight is returned when a send for the same bill is
	// already running. Repeated taps on the send button must not
	// deliver the message twice.
	ErrSendInFlight = errors.New("message send already in progress for this bill")

	// ErrNoPhone is returned when the bill has no customer phone.
	ErrNoPhone = errors.New("bill has no customer phone number")
)

type Params struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	Provider Provider
}

// Service composes and sends per-bill summary messages. Sends are
// single-flight per bill ID.
type Service struct {
	cfg      config.Config
	log      *zap.Logger
	provider Provider

	mu       sync.Mutex
	inFlight map[snowflake.ID]struct{}
}

func NewService(p Params) *Service {
	return &Service{
		cfg:      p.Config,
		log:      p.Log.Named("message.service"),
		provider: p.Provider,
		inFlight: make(map[snowflake.ID]struct{}),
	}
}

// SendBill delivers the bill summary to the customer's phone.
func (s *Service) SendBill(ctx context.Context, detail billdomain.Detail) error {
	if err := s.acquire(detail); err != nil {
		return err
	}
	defer s.release(detail.Bill.ID)
	return s.deliver(ctx, detail)
}

// SendBillAsync claims the per-bill slot and delivers in the background.
// A second call for the same bill fails fast with ErrSendInFlight while
// the first is still running.
func (s *Service) SendBillAsync(ctx context.Context, detail billdomain.Detail) error {
	if err := s.acquire(detail); err != nil {
		return err
	}
	go func() {
		defer s.release(detail.Bill.ID)
		_ = s.deliver(context.WithoutCancel(ctx), detail)
	}()
	return nil
}

func (s *Service) acquire(detail billdomain.Detail) error {
	if detail.Bill.CustomerPhone == "" {
		return ErrNoPhone
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[detail.Bill.ID]; busy {
		return ErrSendInFlight
	}
	s.inFlight[detail.Bill.ID] = struct{}{}
	return nil
}

func (s *Service) release(id snowflake.ID) {
	s.mu.Lock()
	delete(s.inFlight, id)
	s.mu.Unlock()
}

func (s *Service) deliver(ctx context.Context, detail billdomain.Detail) error {
	id := detail.Bill.ID
	body := s.Compose(detail)
	if err := s.provider.SendText(ctx, detail.Bill.CustomerPhone, body); err != nil {
		s.log.Warn("bill message send failed",
			zap.String("bill_id", id.String()), zap.Error(err))
		return err
	}

	s.log.Info("bill message sent", zap.String("bill_id", id.String()))
	return nil
}

// Compose builds the message body for a bill.
func (s *Service) Compose(detail billdomain.Detail) string {
	var b strings.Builder
	bill := detail.Bill

	fmt.Fprintf(&b, "Thank you for shopping at %s!\n", s.cfg.ShopName)
	fmt.Fprintf(&b, "Bill %s | %s\n", bill.ID.String(), bill.CreatedAt.Format("02/01/2006 15:04"))
	b.WriteString("\n")
	for _, item := range detail.Items {
		fmt.Fprintf(&b, "%s x%.2f = Rs%s\n", item.ItemName, item.Quantity, money.FormatCurrency(item.FinalPrice))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: Rs%s", money.FormatCurrency(bill.TotalAmount))
	return b.String()
}
