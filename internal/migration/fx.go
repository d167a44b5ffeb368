package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module applies schema migrations on startup.
var Module = fx.Module("migration",
	fx.Invoke(runOnStartup),
)

func runOnStartup(gdb *gorm.DB, logger *zap.Logger) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	if err := RunMigrations(sqlDB); err != nil {
		return err
	}
	logger.Info("database schema up to date")
	return nil
}
