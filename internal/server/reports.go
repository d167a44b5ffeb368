package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	reportdomain "github.com/kiranapos/kirana/internal/report/domain"
)

func (s *Server) GetSalesReport(c *gin.Context) {
	from, to, ok := s.exportRange(c)
	if !ok {
		return
	}
	topLimit, _ := strconv.Atoi(c.Query("top_limit"))

	summary, err := s.reportSvc.Summarize(c.Request.Context(), reportdomain.Request{
		From:     from,
		To:       to,
		TopLimit: topLimit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func (s *Server) ExportSalesReport(c *gin.Context) {
	from, to, ok := s.exportRange(c)
	if !ok {
		return
	}

	name := fmt.Sprintf("sales-%s-%s.csv", from.Format(dateOnlyLayout), to.Format(dateOnlyLayout))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", "text/csv")

	err := s.reportSvc.ExportCSV(c.Request.Context(), reportdomain.Request{
		From: from,
		To:   to,
	}, c.Writer)
	if err != nil {
		s.log.Error("sales export failed", zap.Error(err))
	}
}
