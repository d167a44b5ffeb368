// Package message sends bill summaries to customers over a messaging
// channel such as WhatsApp.
package message

import (
	"context"

	"go.uber.org/zap"
)

// Provider delivers a text message to a phone number.
type Provider interface {
	SendText(ctx context.Context, phone string, body string) error
}

// LogProvider records outgoing messages without delivering them. It is
// the default until a gateway is configured.
type LogProvider struct {
	log *zap.Logger
}

func NewLogProvider(log *zap.Logger) *LogProvider {
	return &LogProvider{log: log.Named("message.provider")}
}

func (p *LogProvider) SendText(ctx context.Context, phone string, body string) error {
	p.log.Info("message delivery skipped, no gateway configured",
		zap.String("phone", phone),
		zap.Int("body_len", len(body)),
	)
	return nil
}
