package item

import (
	"github.com/kiranapos/kirana/internal/item/repository"
	"github.com/kiranapos/kirana/internal/item/service"
	"go.uber.org/fx"
)

var Module = fx.Module("item.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
