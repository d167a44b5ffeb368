package message

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.message",
	fx.Provide(provideProvider),
	fx.Provide(NewService),
)

func provideProvider(log *zap.Logger) Provider {
	return NewLogProvider(log)
}
