package receipt

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
)

// ESC/POS trailer: feed five lines, then full cut.
var escposCut = []byte{'\n', '\n', '\n', '\n', '\n', 0x1d, 0x56, 0x00}

// Printer delivers formatted receipt text to a device. USB and serial
// transports are vendor-library glue and live behind this same interface
// in their own builds; the network transport is the concrete one here.
type Printer interface {
	Print(ctx context.Context, text string) error
}

// NetworkPrinter talks raw ESC/POS over TCP (the usual port is 9100).
type NetworkPrinter struct {
	addr    string
	timeout time.Duration
}

// NewNetworkPrinter returns a printer for host:port.
func NewNetworkPrinter(host string, port int) *NetworkPrinter {
	return &NetworkPrinter{
		addr:    net.JoinHostPort(host, fmt.Sprintf("%d", port)),
		timeout: 5 * time.Second,
	}
}

func (p *NetworkPrinter) Print(ctx context.Context, text string) error {
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return fmt.Errorf("printer connect %s: %w", p.addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	} else {
		_ = conn.SetWriteDeadline(time.Now().Add(p.timeout))
	}

	if _, err := conn.Write([]byte(text)); err != nil {
		return fmt.Errorf("printer write: %w", err)
	}
	if _, err := conn.Write(escposCut); err != nil {
		return fmt.Errorf("printer cut: %w", err)
	}
	return nil
}

// NopPrinter logs receipts instead of printing; used when no printer is
// configured so bill saving keeps working on an unequipped terminal.
type NopPrinter struct {
	log *zap.Logger
}

func NewNopPrinter(log *zap.Logger) *NopPrinter {
	return &NopPrinter{log: log.Named("receipt.nop")}
}

func (p *NopPrinter) Print(_ context.Context, text string) error {
	p.log.Info("printer not configured, receipt discarded",
		zap.Int("length", len(text)))
	return nil
}
