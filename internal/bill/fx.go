package bill

import (
	"github.com/kiranapos/kirana/internal/bill/cart"
	"github.com/kiranapos/kirana/internal/bill/repository"
	"github.com/kiranapos/kirana/internal/bill/service"
	"github.com/kiranapos/kirana/internal/item"
	"go.uber.org/fx"
)

var Module = fx.Module("bill.service",
	item.Module,
	cart.Module,
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
