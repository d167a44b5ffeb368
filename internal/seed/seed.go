// Package seed bootstraps the rows a fresh installation needs.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/kiranapos/kirana/internal/config"
	settingsdomain "github.com/kiranapos/kirana/internal/settings/domain"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
)

// EnsureDefaultSettings creates the single settings row when it is
// missing. Shop identity comes from config; credentials start at the
// well-known defaults and are changed from the admin screen.
func EnsureDefaultSettings(db *gorm.DB, node *snowflake.Node, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing settingsdomain.AdminSettings
		err := tx.WithContext(ctx).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		row := settingsdomain.AdminSettings{
			ID:            node.Generate(),
			ShopName:      cfg.ShopName,
			ShopAddress:   cfg.ShopAddress,
			ShopPhone:     cfg.ShopPhone,
			AdminUsername: defaultAdminUsername,
			AdminPassword: defaultAdminPassword,
			PaperWidth:    settingsdomain.PaperWidth80,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return tx.WithContext(ctx).Create(&row).Error
	})
}
