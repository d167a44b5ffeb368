// Package server exposes the HTTP API consumed by the POS front end.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/kiranapos/kirana/internal/bill"
	"github.com/kiranapos/kirana/internal/bill/cart"
	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	"github.com/kiranapos/kirana/internal/config"
	itemdomain "github.com/kiranapos/kirana/internal/item/domain"
	"github.com/kiranapos/kirana/internal/providers"
	"github.com/kiranapos/kirana/internal/providers/message"
	"github.com/kiranapos/kirana/internal/providers/pdf"
	"github.com/kiranapos/kirana/internal/receipt"
	"github.com/kiranapos/kirana/internal/report"
	reportdomain "github.com/kiranapos/kirana/internal/report/domain"
	"github.com/kiranapos/kirana/internal/settings"
	settingsdomain "github.com/kiranapos/kirana/internal/settings/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	bill.Module,
	settings.Module,
	receipt.Module,
	report.Module,
	providers.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware(log))
	r.Use(MetricsMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.ListenAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	itemSvc     itemdomain.Service
	billSvc     billdomain.Service
	carts       *cart.Manager
	settingsSvc settingsdomain.Service
	reportSvc   reportdomain.Service
	receipts    *receipt.Service
	messages    *message.Service
	pdfProvider pdf.Provider

	scans *scanRegistry
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	ItemSvc     itemdomain.Service
	BillSvc     billdomain.Service
	Carts       *cart.Manager
	SettingsSvc settingsdomain.Service
	ReportSvc   reportdomain.Service
	Receipts    *receipt.Service
	Messages    *message.Service
	PDFProvider pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		itemSvc:     p.ItemSvc,
		billSvc:     p.BillSvc,
		carts:       p.Carts,
		settingsSvc: p.SettingsSvc,
		reportSvc:   p.ReportSvc,
		receipts:    p.Receipts,
		messages:    p.Messages,
		pdfProvider: p.PDFProvider,
	}
	svc.scans = newScanRegistry(svc.commitScan)

	svc.registerAPIRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Inventory --------
	api.GET("/items/barcode", s.ListBarcodeItems)
	api.POST("/items/barcode", s.AddBarcodeItem)
	api.GET("/items/barcode/lookup", s.LookupBarcode)
	api.PUT("/items/barcode/:id", s.UpdateBarcodeItem)
	api.DELETE("/items/barcode/:id", s.DeleteBarcodeItem)
	api.POST("/items/barcode/import", s.ImportBarcodeCSV)

	api.GET("/categories", s.ListCategories)
	api.POST("/categories", s.AddCategory)
	api.DELETE("/categories/:id", s.DeleteCategory)

	api.GET("/items/loose", s.ListLooseItems)
	api.POST("/items/loose", s.AddLooseItem)
	api.PUT("/items/loose/:id", s.UpdateLooseItem)
	api.DELETE("/items/loose/:id", s.DeleteLooseItem)
	api.POST("/items/loose/import", s.ImportLooseCSV)

	// -------- Carts --------
	api.POST("/carts", s.CreateCart)
	api.GET("/carts/:id", s.GetCart)
	api.DELETE("/carts/:id", s.DropCart)
	api.POST("/carts/:id/items", s.AddCartItem)
	api.POST("/carts/:id/items/:index/increase", s.IncreaseCartQty)
	api.POST("/carts/:id/items/:index/decrease", s.DecreaseCartQty)
	api.PUT("/carts/:id/items/:index", s.SetCartQty)
	api.DELETE("/carts/:id/items/:index", s.RemoveCartItem)
	api.DELETE("/carts/:id/items", s.ClearCart)
	api.POST("/carts/:id/scan", s.ScanIntoCart)

	// -------- Bills --------
	api.POST("/bills", s.FinalizeBill)
	api.GET("/bills", s.ListBills)
	api.GET("/bills/export", s.ExportBills)
	api.GET("/bills/:id", s.GetBill)
	api.GET("/bills/:id/receipt", s.GetBillReceipt)
	api.POST("/bills/:id/print", s.PrintBill)
	api.GET("/bills/:id/pdf", s.GetBillPDF)
	api.POST("/bills/:id/message", s.SendBillMessage)

	// -------- Reports --------
	api.GET("/reports/sales", s.GetSalesReport)
	api.GET("/reports/sales/export", s.ExportSalesReport)

	// -------- Settings --------
	api.GET("/settings", s.GetSettings)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/api/admin", s.AdminRequired())

	admin.POST("/login", s.AdminLogin)
	admin.PUT("/settings", s.UpdateSettings)
}
