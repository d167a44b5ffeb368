package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kiranapos/kirana/internal/bill/cart"
	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	billrepo "github.com/kiranapos/kirana/internal/bill/repository"
	billservice "github.com/kiranapos/kirana/internal/bill/service"
	"github.com/kiranapos/kirana/internal/config"
	itemdomain "github.com/kiranapos/kirana/internal/item/domain"
	itemrepo "github.com/kiranapos/kirana/internal/item/repository"
	itemservice "github.com/kiranapos/kirana/internal/item/service"
	"github.com/kiranapos/kirana/internal/providers/message"
	"github.com/kiranapos/kirana/internal/providers/pdf"
	"github.com/kiranapos/kirana/internal/receipt"
	reportrepo "github.com/kiranapos/kirana/internal/report/repository"
	reportservice "github.com/kiranapos/kirana/internal/report/service"
	"github.com/kiranapos/kirana/internal/seed"
	"github.com/kiranapos/kirana/internal/settings"
	settingsdomain "github.com/kiranapos/kirana/internal/settings/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&itemdomain.BarcodeItem{},
		&itemdomain.LooseCategory{},
		&itemdomain.LooseItem{},
		&billdomain.Bill{},
		&billdomain.BillItem{},
		&settingsdomain.AdminSettings{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	require.NoError(t, seed.EnsureDefaultSettings(db, node, config.Config{ShopName: "Kirana Store"}))

	itemSvc := itemservice.New(itemservice.Params{
		DB: db, Log: log, GenID: node, Repo: itemrepo.Provide(),
	})
	billSvc := billservice.New(billservice.Params{
		DB: db, Log: log, GenID: node, Repo: billrepo.Provide(), Items: itemSvc,
	})
	settingsSvc := settings.New(settings.Params{
		DB: db, Log: log, GenID: node, Repo: settings.ProvideRepository(),
	})
	reportSvc := reportservice.New(reportservice.Params{
		DB: db, Log: log, Repo: reportrepo.Provide(),
	})
	receipts := receipt.New(receipt.Params{
		Log: log, Settings: settingsSvc, Printer: receipt.NewNopPrinter(log),
	})
	messages := message.NewService(message.Params{
		Config:   config.Config{ShopName: "Kirana Store"},
		Log:      log,
		Provider: message.NewLogProvider(log),
	})

	return NewServer(ServerParams{
		Gin:         NewEngine(log),
		Cfg:         config.Config{ListenAddr: "127.0.0.1:0"},
		Log:         log,
		ItemSvc:     itemSvc,
		BillSvc:     billSvc,
		Carts:       cart.NewManager(node),
		SettingsSvc: settingsSvc,
		ReportSvc:   reportSvc,
		Receipts:    receipts,
		Messages:    messages,
		PDFProvider: pdf.New(),
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBarcodeItemLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/items/barcode", itemdomain.UpsertBarcodeItemRequest{
		Barcode: "8901234567890", Name: "Soap",
		SGSTPercent: 9, CGSTPercent: 9, TotalPrice: 29.50, Quantity: 10,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var item itemdomain.Item
	decodeData(t, w, &item)
	assert.Equal(t, "Soap", item.Name)
	assert.InDelta(t, 25.00, item.BasePrice, 0.001)

	// Duplicate barcode is a conflict.
	w = doJSON(t, s, http.MethodPost, "/api/items/barcode", itemdomain.UpsertBarcodeItemRequest{
		Barcode: "8901234567890", Name: "Other",
		TotalPrice: 10, Quantity: 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/items/barcode/lookup?code=8901234567890", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/items/barcode/lookup?code=0000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartAndBillFlow(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/items/barcode", itemdomain.UpsertBarcodeItemRequest{
		Barcode: "8901234567890", Name: "Soap",
		SGSTPercent: 9, CGSTPercent: 9, TotalPrice: 29.50, Quantity: 10,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/carts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		CartID string `json:"cart_id"`
	}
	decodeData(t, w, &created)
	require.NotEmpty(t, created.CartID)

	w = doJSON(t, s, http.MethodPost, "/api/carts/"+created.CartID+"/items", addCartItemRequest{
		Barcode: "8901234567890", Quantity: 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var state cart.State
	decodeData(t, w, &state)
	require.Len(t, state.Lines, 1)
	assert.InDelta(t, 59.00, state.Totals.TotalAmount, 0.001)

	w = doJSON(t, s, http.MethodPost, "/api/bills", finalizeBillRequest{
		CartID:       created.CartID,
		CustomerName: "Asha",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var detail billdomain.Detail
	decodeData(t, w, &detail)
	assert.InDelta(t, 59.00, detail.Bill.TotalAmount, 0.001)
	require.Len(t, detail.Items, 1)

	// Cart is gone after finalize.
	w = doJSON(t, s, http.MethodGet, "/api/carts/"+created.CartID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Stock was decremented.
	w = doJSON(t, s, http.MethodGet, "/api/items/barcode/lookup?code=8901234567890", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var item itemdomain.Item
	decodeData(t, w, &item)
	assert.Equal(t, 8, item.Quantity)

	// Saved bill is listed and renders a receipt.
	w = doJSON(t, s, http.MethodGet, "/api/bills?customer_name=Asha", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Asha")

	billID := detail.Bill.ID.String()
	w = doJSON(t, s, http.MethodGet, "/api/bills/"+billID+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TOTAL: Rs59.00")
}

func TestFinalize_EmptyCartRejected(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/carts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		CartID string `json:"cart_id"`
	}
	decodeData(t, w, &created)

	w = doJSON(t, s, http.MethodPost, "/api/bills", finalizeBillRequest{
		CartID:       created.CartID,
		CustomerName: "Asha",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminSettingsGate(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader(`{"paper_width":"58mm"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body = strings.NewReader(`{"paper_width":"58mm"}`)
	req = httptest.NewRequest(http.MethodPut, "/api/admin/settings", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAdminUsername, "admin")
	req.Header.Set(headerAdminPassword, "admin")
	w = httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated settingsdomain.AdminSettings
	decodeData(t, w, &updated)
	assert.Equal(t, settingsdomain.PaperWidth58, updated.PaperWidth)
}
