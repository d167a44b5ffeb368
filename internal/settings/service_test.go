package settings

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kiranapos/kirana/internal/settings/domain"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AdminSettings{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{DB: db, Log: zap.NewNop(), GenID: node, Repo: ProvideRepository()})
}

func strptr(s string) *string { return &s }

func TestGet_MissingRow(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
}

func TestUpdate_CreatesAndEditsRow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Update(ctx, domain.UpdateRequest{
		ShopName:      strptr("Kirana Store"),
		AdminUsername: strptr("admin"),
		AdminPassword: strptr("secret"),
		PaperWidth:    strptr(domain.PaperWidth112),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kirana Store", created.ShopName)
	assert.Equal(t, domain.PaperWidth112, created.PaperWidth)

	// Partial update leaves the rest untouched.
	updated, err := svc.Update(ctx, domain.UpdateRequest{
		ShopPhone: strptr("04412345678"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kirana Store", updated.ShopName)
	assert.Equal(t, "04412345678", updated.ShopPhone)
	assert.Equal(t, created.ID, updated.ID)
}

func TestUpdate_RejectsUnknownPaperWidth(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), domain.UpdateRequest{
		PaperWidth: strptr("60mm"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaperWidth)
}

func TestVerifyAdmin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.VerifyAdmin(ctx, "admin", "secret"), domain.ErrSettingsNotFound)

	_, err := svc.Update(ctx, domain.UpdateRequest{
		AdminUsername: strptr("admin"),
		AdminPassword: strptr("secret"),
	})
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyAdmin(ctx, "admin", "secret"))
	assert.ErrorIs(t, svc.VerifyAdmin(ctx, "admin", "wrong"), domain.ErrInvalidCredentials)
}
