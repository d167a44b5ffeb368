// Package domain contains shop settings records and contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Paper widths supported by the thermal printer, with their line widths.
const (
	PaperWidth58  = "58mm"  // 24 characters
	PaperWidth80  = "80mm"  // 32 characters
	PaperWidth112 = "112mm" // 48 characters
)

var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrInvalidPaperWidth  = errors.New("paper width must be 58mm, 80mm or 112mm")
	ErrSettingsNotFound   = errors.New("settings not found")
)

// AdminSettings is the single settings row. The credential pair is a
// plaintext compare gate for the admin screens, not a security boundary.
type AdminSettings struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	ShopName      string       `gorm:"type:text;not null;default:''" json:"shop_name"`
	ShopAddress   string       `gorm:"type:text;not null;default:''" json:"shop_address"`
	ShopPhone     string       `gorm:"type:text;not null;default:''" json:"shop_phone"`
	ShopGmail     string       `gorm:"type:text;not null;default:''" json:"shop_gmail"`
	AdminUsername string       `gorm:"type:text;not null;default:'admin'" json:"-"`
	AdminPassword string       `gorm:"type:text;not null;default:'admin'" json:"-"`
	PaperWidth    string       `gorm:"type:text;not null;default:'80mm'" json:"paper_width"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AdminSettings) TableName() string { return "admin_settings" }

// UpdateRequest carries editable settings fields. Nil means unchanged.
type UpdateRequest struct {
	ShopName      *string `json:"shop_name,omitempty"`
	ShopAddress   *string `json:"shop_address,omitempty"`
	ShopPhone     *string `json:"shop_phone,omitempty"`
	ShopGmail     *string `json:"shop_gmail,omitempty"`
	AdminUsername *string `json:"admin_username,omitempty"`
	AdminPassword *string `json:"admin_password,omitempty"`
	PaperWidth    *string `json:"paper_width,omitempty"`
}

// Service reads and writes the settings row.
type Service interface {
	Get(ctx context.Context) (AdminSettings, error)
	Update(ctx context.Context, req UpdateRequest) (AdminSettings, error)
	// VerifyAdmin gates the admin screens with a plaintext compare.
	VerifyAdmin(ctx context.Context, username, password string) error
}

// Repository is the persistence boundary for the settings row.
type Repository interface {
	Find(ctx context.Context, db *gorm.DB) (*AdminSettings, error)
	Save(ctx context.Context, db *gorm.DB, settings *AdminSettings) error
}
