package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billdomain "github.com/kiranapos/kirana/internal/bill/domain"
	"github.com/kiranapos/kirana/internal/receipt"
	settingsdomain "github.com/kiranapos/kirana/internal/settings/domain"
	"github.com/kiranapos/kirana/pkg/db/pagination"
)

type finalizeBillRequest struct {
	CartID        string `json:"cart_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// FinalizeBill snapshots the cart into an immutable bill. The cart is
// dropped on success and the receipt is printed best-effort: a printer
// failure is reported in the response but never rolls the bill back.
func (s *Server) FinalizeBill(c *gin.Context) {
	var req finalizeBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	state, err := s.carts.Snapshot(req.CartID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	detail, err := s.billSvc.Finalize(c.Request.Context(), billdomain.FinalizeRequest{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Lines:         state.Lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.scans.Drop(req.CartID)
	s.carts.Drop(req.CartID)

	printed := true
	if err := s.receipts.Print(c.Request.Context(), detail); err != nil {
		printed = false
	}

	c.JSON(http.StatusOK, gin.H{"data": detail, "printed": printed})
}

func (s *Server) ListBills(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CustomerName string `form:"customer_name"`
		CreatedFrom  string `form:"created_from"`
		CreatedTo    string `form:"created_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	createdFrom, err := parseOptionalTime(query.CreatedFrom, false)
	if err != nil {
		AbortWithError(c, newValidationError("created_from", "invalid_created_from", "invalid created_from"))
		return
	}
	createdTo, err := parseOptionalTime(query.CreatedTo, true)
	if err != nil {
		AbortWithError(c, newValidationError("created_to", "invalid_created_to", "invalid created_to"))
		return
	}

	resp, err := s.billSvc.List(c.Request.Context(), billdomain.ListRequest{
		Pagination:   query.Pagination,
		CustomerName: strings.TrimSpace(query.CustomerName),
		CreatedFrom:  createdFrom,
		CreatedTo:    createdTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp.Bills, "page_info": resp.PageInfo})
}

func (s *Server) GetBill(c *gin.Context) {
	detail, err := s.billSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": detail})
}

func (s *Server) ExportBills(c *gin.Context) {
	from, to, ok := s.exportRange(c)
	if !ok {
		return
	}
	includeLines, _ := strconv.ParseBool(c.DefaultQuery("include_lines", "false"))
	save, _ := strconv.ParseBool(c.DefaultQuery("save", "false"))

	var buf bytes.Buffer
	err := s.billSvc.ExportCSV(c.Request.Context(), billdomain.ExportRequest{
		From:         from,
		To:           to,
		IncludeLines: includeLines,
	}, &buf)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	name := fmt.Sprintf("bills-%s-%s.csv", from.Format(dateOnlyLayout), to.Format(dateOnlyLayout))
	if save {
		if err := s.saveExport(name, buf.Bytes()); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// saveExport drops a copy of an export into the configured export
// directory for backup or USB transfer.
func (s *Server) saveExport(name string, data []byte) error {
	if err := os.MkdirAll(s.cfg.ExportDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.cfg.ExportDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	s.log.Info("export saved", zap.String("path", path))
	return nil
}

func (s *Server) GetBillReceipt(c *gin.Context) {
	detail, err := s.billSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	text, err := s.receipts.Render(c.Request.Context(), detail)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.String(http.StatusOK, text)
}

func (s *Server) PrintBill(c *gin.Context) {
	detail, err := s.billSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.receipts.Print(c.Request.Context(), detail); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrPrinterUnavailable, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "printed"})
}

func (s *Server) GetBillPDF(c *gin.Context) {
	detail, err := s.billSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfProvider.GenerateBill(c.Request.Context(), detail, s.shopInfo(c.Request.Context()))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+s.pdfProvider.FileName(detail)+`"`)
	c.Header("Content-Type", "application/pdf")
	if _, err := io.Copy(c.Writer, doc); err != nil {
		s.log.Error("pdf download failed",
			zap.String("bill_id", detail.Bill.ID.String()), zap.Error(err))
	}
}

func (s *Server) SendBillMessage(c *gin.Context) {
	detail, err := s.billSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.messages.SendBillAsync(c.Request.Context(), detail); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sending"})
}

func (s *Server) exportRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil || from == nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return time.Time{}, time.Time{}, false
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil || to == nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return time.Time{}, time.Time{}, false
	}
	return *from, *to, true
}

func (s *Server) shopInfo(ctx context.Context) receipt.ShopInfo {
	cfg, err := s.settingsSvc.Get(ctx)
	if err != nil && !errors.Is(err, settingsdomain.ErrSettingsNotFound) {
		s.log.Warn("settings lookup failed", zap.Error(err))
	}
	return receipt.ShopInfo{
		Name:    cfg.ShopName,
		Address: cfg.ShopAddress,
		Phone:   cfg.ShopPhone,
	}
}
