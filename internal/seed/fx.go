package seed

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/kiranapos/kirana/internal/config"
)

var Module = fx.Module("seed",
	fx.Invoke(runOnStartup),
)

func runOnStartup(db *gorm.DB, node *snowflake.Node, cfg config.Config) error {
	return EnsureDefaultSettings(db, node, cfg)
}
