package report

import (
	"github.com/kiranapos/kirana/internal/report/repository"
	"github.com/kiranapos/kirana/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
