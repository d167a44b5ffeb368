package message

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	"github.com/kiranapos/kirana/internal/config"
	"github.com/kiranapos/kirana/internal/tax"
)

type blockingProvider struct {
	started chan struct{}
	release chan struct{}
	mu      sync.Mutex
	sent    []string
}

func (p *blockingProvider) SendText(ctx context.Context, phone string, body string) error {
	close(p.started)
	<-p.release
	p.mu.Lock()
	p.sent = append(p.sent, phone)
	p.mu.Unlock()
	return nil
}

func testDetail() billdomain.Detail {
	return billdomain.Detail{
		Bill: billdomain.Bill{
			ID:            42,
			CustomerName:  "Asha",
			CustomerPhone: "+919876543210",
			TotalAmount:   84.00,
			CreatedAt:     time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC),
		},
		Items: []billdomain.BillItem{
			{ItemName: "Sugar", ItemType: tax.ItemTypeLoose, Quantity: 2.0, FinalPrice: 84.00},
		},
	}
}

func newTestService(p Provider) *Service {
	return NewService(Params{
		Config:   config.Config{ShopName: "Kirana Store"},
		Log:      zap.NewNop(),
		Provider: p,
	})
}

func TestSendBill_RequiresPhone(t *testing.T) {
	svc := newTestService(NewLogProvider(zap.NewNop()))

	detail := testDetail()
	detail.Bill.CustomerPhone = ""

	err := svc.SendBill(context.Background(), detail)
	assert.ErrorIs(t, err, ErrNoPhone)
}

func TestSendBill_SingleFlightPerBill(t *testing.T) {
	provider := &blockingProvider{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newTestService(provider)
	detail := testDetail()

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- svc.SendBill(context.Background(), detail)
	}()

	<-provider.started

	// Second send for the same bill is rejected while the first runs.
	err := svc.SendBill(context.Background(), detail)
	assert.ErrorIs(t, err, ErrSendInFlight)

	close(provider.release)
	require.NoError(t, <-firstDone)

	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Len(t, provider.sent, 1)
}

func TestSendBillAsync_SingleFlight(t *testing.T) {
	provider := &blockingProvider{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newTestService(provider)
	detail := testDetail()

	require.NoError(t, svc.SendBillAsync(context.Background(), detail))
	<-provider.started

	assert.ErrorIs(t, svc.SendBillAsync(context.Background(), detail), ErrSendInFlight)

	close(provider.release)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		provider.mu.Lock()
		n := len(provider.sent)
		provider.mu.Unlock()
		if n == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("background send never completed")
}

func TestCompose(t *testing.T) {
	svc := newTestService(NewLogProvider(zap.NewNop()))

	body := svc.Compose(testDetail())
	assert.Contains(t, body, "Kirana Store")
	assert.Contains(t, body, "Bill 42")
	assert.Contains(t, body, "Sugar x2.00 = Rs84.00")
	assert.Contains(t, body, "Total: Rs84.00")
}
