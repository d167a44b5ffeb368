package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kiranapos/kirana/internal/bill/domain"
	itemdomain "github.com/kiranapos/kirana/internal/item/domain"
	"github.com/kiranapos/kirana/internal/tax"
	"github.com/kiranapos/kirana/pkg/db/pagination"
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
	Items itemdomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	items itemdomain.Service
}

// New constructs the bill service.
func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("bill.service"),
		genID: p.GenID,
		repo:  p.Repo,
		items: p.Items,
	}
}

func (s *Service) Finalize(ctx context.Context, req domain.FinalizeRequest) (domain.Detail, error) {
	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		return domain.Detail{}, domain.ErrInvalidCustomerName
	}
	if len(req.Lines) == 0 {
		return domain.Detail{}, domain.ErrEmptyBill
	}

	phone, err := domain.NormalizePhone(req.CustomerPhone)
	if err != nil {
		return domain.Detail{}, err
	}

	// Derived amounts come from the engine at save time, not from whatever
	// the caller sent.
	lines := make([]domain.DraftLine, len(req.Lines))
	copy(lines, req.Lines)
	for i := range lines {
		if lines[i].Quantity <= 0 {
			return domain.Detail{}, domain.ErrInvalidQuantity
		}
		tax.Recompute(&lines[i].Line)
	}
	totals := tax.BillTotals(domain.TaxLines(lines))

	now := time.Now().UTC()
	bill := domain.Bill{
		ID:            s.genID.Generate(),
		CustomerName:  customerName,
		CustomerPhone: phone,
		TotalItems:    totals.TotalItems,
		TotalWeight:   totals.TotalWeight,
		TotalAmount:   totals.TotalAmount,
		TotalSGST:     totals.TotalSGST,
		TotalCGST:     totals.TotalCGST,
		CreatedAt:     now,
	}

	items := make([]domain.BillItem, 0, len(lines))
	for i, l := range lines {
		items = append(items, domain.BillItem{
			ID:          s.genID.Generate(),
			BillID:      bill.ID,
			Position:    i,
			ItemName:    l.ItemName,
			HSNCode:     l.HSNCode,
			ItemType:    l.ItemType,
			Quantity:    l.Quantity,
			BasePrice:   l.BasePrice,
			SGSTPercent: l.SGSTPercent,
			CGSTPercent: l.CGSTPercent,
			SGSTAmount:  l.SGSTAmount,
			CGSTAmount:  l.CGSTAmount,
			FinalPrice:  l.FinalPrice,
			CreatedAt:   now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertBill(ctx, tx, &bill); err != nil {
			return err
		}
		return s.repo.InsertItems(ctx, tx, items)
	})
	if err != nil {
		return domain.Detail{}, err
	}

	// Stock decrement is best effort after the save; a failure here must
	// not lose the bill.
	for _, l := range lines {
		if l.ItemType != tax.ItemTypeBarcode || l.Barcode == "" {
			continue
		}
		if err := s.items.DecrementBarcodeStock(ctx, l.Barcode, int(l.Quantity)); err != nil {
			s.log.Warn("stock decrement failed",
				zap.String("barcode", l.Barcode), zap.Error(err))
		}
	}

	s.log.Info("bill saved",
		zap.String("bill_id", bill.ID.String()),
		zap.Int("total_items", bill.TotalItems),
		zap.Float64("total_amount", bill.TotalAmount))

	return domain.Detail{Bill: bill, Items: items}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Detail, error) {
	billID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Detail{}, domain.ErrBillNotFound
	}

	bill, err := s.repo.FindByID(ctx, s.db, billID)
	if err != nil {
		return domain.Detail{}, err
	}
	if bill == nil {
		return domain.Detail{}, domain.ErrBillNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, billID)
	if err != nil {
		return domain.Detail{}, err
	}

	return domain.Detail{Bill: *bill, Items: items}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	rows, err := s.repo.List(ctx, s.db, domain.ListFilter{
		CustomerName: strings.TrimSpace(req.CustomerName),
		CreatedFrom:  req.CreatedFrom,
		CreatedTo:    req.CreatedTo,
	}, pagination.Pagination{PageToken: req.PageToken, PageSize: pageSize})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, pageSize, func(bill *domain.Bill) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        bill.ID.String(),
			CreatedAt: bill.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if len(rows) > pageSize {
		rows = rows[:pageSize]
	}

	bills := make([]domain.Bill, 0, len(rows))
	for _, row := range rows {
		bills = append(bills, *row)
	}

	resp := domain.ListResponse{Bills: bills}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}
