package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kiranapos/kirana/internal/money"
	domain "github.com/kiranapos/kirana/internal/report/domain"
)

const defaultTopLimit = 10

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &service{
		db:   p.DB,
		log:  p.Log.Named("report.service"),
		repo: p.Repo,
	}
}

func (s *service) Summarize(ctx context.Context, req domain.Request) (*domain.Summary, error) {
	if req.From.IsZero() || req.To.IsZero() || !req.From.Before(req.To) {
		return nil, domain.ErrInvalidRange
	}
	limit := req.TopLimit
	if limit <= 0 {
		limit = defaultTopLimit
	}

	count, amount, sgst, cgst, err := s.repo.Totals(ctx, s.db, req.From, req.To)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.DailySeries(ctx, s.db, req.From, req.To)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopItems(ctx, s.db, req.From, req.To, limit)
	if err != nil {
		return nil, err
	}

	return &domain.Summary{
		From:        req.From,
		To:          req.To,
		BillCount:   count,
		TotalAmount: amount,
		TotalSGST:   sgst,
		TotalCGST:   cgst,
		Daily:       daily,
		TopItems:    top,
	}, nil
}

// ExportCSV writes the daily series followed by the top-items table.
func (s *service) ExportCSV(ctx context.Context, req domain.Request, w io.Writer) error {
	summary, err := s.Summarize(ctx, req)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "bill_count", "amount"}); err != nil {
		return err
	}
	for _, p := range summary.Daily {
		rec := []string{p.Date, fmt.Sprintf("%d", p.BillCount), money.FormatCurrency(p.Amount)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := cw.Write([]string{"item_name", "item_type", "quantity", "revenue"}); err != nil {
		return err
	}
	for _, it := range summary.TopItems {
		rec := []string{it.ItemName, it.ItemType, fmt.Sprintf("%.2f", it.Quantity), money.FormatCurrency(it.Revenue)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
