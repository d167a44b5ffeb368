package settings

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kiranapos/kirana/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

// New constructs the settings service.
func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("settings.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.AdminSettings, error) {
	settings, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return domain.AdminSettings{}, err
	}
	if settings == nil {
		return domain.AdminSettings{}, domain.ErrSettingsNotFound
	}
	return *settings, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.AdminSettings, error) {
	settings, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return domain.AdminSettings{}, err
	}
	if settings == nil {
		settings = &domain.AdminSettings{
			ID:        s.genID.Generate(),
			CreatedAt: time.Now().UTC(),
		}
	}

	if req.ShopName != nil {
		settings.ShopName = *req.ShopName
	}
	if req.ShopAddress != nil {
		settings.ShopAddress = *req.ShopAddress
	}
	if req.ShopPhone != nil {
		settings.ShopPhone = *req.ShopPhone
	}
	if req.ShopGmail != nil {
		settings.ShopGmail = *req.ShopGmail
	}
	if req.AdminUsername != nil {
		settings.AdminUsername = *req.AdminUsername
	}
	if req.AdminPassword != nil {
		settings.AdminPassword = *req.AdminPassword
	}
	if req.PaperWidth != nil {
		switch *req.PaperWidth {
		case domain.PaperWidth58, domain.PaperWidth80, domain.PaperWidth112:
			settings.PaperWidth = *req.PaperWidth
		default:
			return domain.AdminSettings{}, domain.ErrInvalidPaperWidth
		}
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, settings); err != nil {
		return domain.AdminSettings{}, err
	}
	return *settings, nil
}

func (s *Service) VerifyAdmin(ctx context.Context, username, password string) error {
	settings, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return err
	}
	if settings == nil {
		return domain.ErrSettingsNotFound
	}
	if settings.AdminUsername != username || settings.AdminPassword != password {
		return domain.ErrInvalidCredentials
	}
	return nil
}
