package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kiranapos/kirana/internal/item/domain"
	"github.com/kiranapos/kirana/internal/tax"
	"github.com/kiranapos/kirana/pkg/db"
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

// New constructs the inventory service.
func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("item.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) AddBarcodeItem(ctx context.Context, req domain.UpsertBarcodeItemRequest) (domain.Item, error) {
	if err := validateBarcodeRequest(&req); err != nil {
		return domain.Item{}, err
	}

	existing, err := s.repo.FindBarcode(ctx, s.db, req.Barcode)
	if err != nil {
		return domain.Item{}, err
	}
	if existing != nil {
		return domain.Item{}, domain.ErrDuplicateBarcode
	}

	now := time.Now().UTC()
	item := domain.BarcodeItem{
		ID:          s.genID.Generate(),
		Barcode:     req.Barcode,
		Name:        req.Name,
		HSNCode:     req.HSNCode,
		SGSTPercent: req.SGSTPercent,
		CGSTPercent: req.CGSTPercent,
		BasePrice:   tax.BaseFromFinal(req.TotalPrice, req.SGSTPercent, req.CGSTPercent),
		TotalPrice:  req.TotalPrice,
		Quantity:    req.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.InsertBarcode(ctx, s.db, &item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Item{}, domain.ErrDuplicateBarcode
		}
		return domain.Item{}, err
	}

	return item.Record(), nil
}

func (s *Service) UpdateBarcodeItem(ctx context.Context, id string, req domain.UpsertBarcodeItemRequest) (domain.Item, error) {
	itemID, err := parseID(id)
	if err != nil {
		return domain.Item{}, domain.ErrItemNotFound
	}
	if err := validateBarcodeRequest(&req); err != nil {
		return domain.Item{}, err
	}

	item, err := s.repo.FindBarcodeByID(ctx, s.db, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrItemNotFound
	}

	// The operator edits the tax-inclusive price; the base is re-derived
	// from the new total, never carried over from the old base.
	item.Barcode = req.Barcode
	item.Name = req.Name
	item.HSNCode = req.HSNCode
	item.SGSTPercent = req.SGSTPercent
	item.CGSTPercent = req.CGSTPercent
	item.TotalPrice = req.TotalPrice
	item.BasePrice = tax.BaseFromFinal(req.TotalPrice, req.SGSTPercent, req.CGSTPercent)
	item.Quantity = req.Quantity
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateBarcode(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Item{}, domain.ErrDuplicateBarcode
		}
		return domain.Item{}, err
	}

	return item.Record(), nil
}

func (s *Service) DeleteBarcodeItem(ctx context.Context, id string) error {
	itemID, err := parseID(id)
	if err != nil {
		return domain.ErrItemNotFound
	}
	item, err := s.repo.FindBarcodeByID(ctx, s.db, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	return s.repo.DeleteBarcode(ctx, s.db, itemID)
}

func (s *Service) GetByBarcode(ctx context.Context, barcode string) (domain.Item, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return domain.Item{}, domain.ErrInvalidBarcode
	}
	item, err := s.repo.FindBarcode(ctx, s.db, barcode)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return item.Record(), nil
}

func (s *Service) GetItem(ctx context.Context, kind domain.Kind, id string) (domain.Item, error) {
	itemID, err := parseID(id)
	if err != nil {
		return domain.Item{}, domain.ErrItemNotFound
	}

	switch kind {
	case domain.KindBarcode:
		item, err := s.repo.FindBarcodeByID(ctx, s.db, itemID)
		if err != nil {
			return domain.Item{}, err
		}
		if item == nil {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return item.Record(), nil
	case domain.KindLoose:
		item, err := s.repo.FindLooseByID(ctx, s.db, itemID)
		if err != nil {
			return domain.Item{}, err
		}
		if item == nil {
			return domain.Item{}, domain.ErrItemNotFound
		}
		category, err := s.repo.FindCategoryByID(ctx, s.db, item.CategoryID)
		if err != nil {
			return domain.Item{}, err
		}
		name := ""
		if category != nil {
			name = category.Name
		}
		return item.Record(name), nil
	default:
		return domain.Item{}, domain.ErrItemNotFound
	}
}

func (s *Service) ListBarcodeItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.repo.ListBarcode(ctx, s.db)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.Record())
	}
	return items, nil
}

func (s *Service) AddCategory(ctx context.Context, name string) (domain.LooseCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.LooseCategory{}, domain.ErrInvalidCategory
	}

	now := time.Now().UTC()
	category := domain.LooseCategory{
		ID:        s.genID.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertCategory(ctx, s.db, &category); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.LooseCategory{}, domain.ErrDuplicateCategory
		}
		return domain.LooseCategory{}, err
	}
	return category, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.LooseCategory, error) {
	rows, err := s.repo.ListCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}
	categories := make([]domain.LooseCategory, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, *row)
	}
	return categories, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := parseID(id)
	if err != nil {
		return domain.ErrCategoryNotFound
	}
	category, err := s.repo.FindCategoryByID(ctx, s.db, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}

	// Items in the category go with it.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := s.repo.ListLooseByCategory(ctx, tx, categoryID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := s.repo.DeleteLoose(ctx, tx, item.ID); err != nil {
				return err
			}
		}
		return s.repo.DeleteCategory(ctx, tx, categoryID)
	})
}

func (s *Service) AddLooseItem(ctx context.Context, req domain.UpsertLooseItemRequest) (domain.Item, error) {
	if err := validateLooseRequest(&req); err != nil {
		return domain.Item{}, err
	}

	category, err := s.repo.FindCategoryByName(ctx, s.db, req.Category)
	if err != nil {
		return domain.Item{}, err
	}
	if category == nil {
		return domain.Item{}, domain.ErrCategoryNotFound
	}

	now := time.Now().UTC()
	item := domain.LooseItem{
		ID:          s.genID.Generate(),
		CategoryID:  category.ID,
		Name:        req.Name,
		HSNCode:     req.HSNCode,
		SGSTPercent: req.SGSTPercent,
		CGSTPercent: req.CGSTPercent,
		BasePrice:   tax.BaseFromFinal(req.TotalPrice, req.SGSTPercent, req.CGSTPercent),
		TotalPrice:  req.TotalPrice,
		Quantity:    req.Quantity,
		ImagePath:   req.ImagePath,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.InsertLoose(ctx, s.db, &item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Item{}, domain.ErrDuplicateItem
		}
		return domain.Item{}, err
	}

	return item.Record(category.Name), nil
}

func (s *Service) UpdateLooseItem(ctx context.Context, id string, req domain.UpsertLooseItemRequest) (domain.Item, error) {
	itemID, err := parseID(id)
	if err != nil {
		return domain.Item{}, domain.ErrItemNotFound
	}
	if err := validateLooseRequest(&req); err != nil {
		return domain.Item{}, err
	}

	item, err := s.repo.FindLooseByID(ctx, s.db, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrItemNotFound
	}

	category, err := s.repo.FindCategoryByName(ctx, s.db, req.Category)
	if err != nil {
		return domain.Item{}, err
	}
	if category == nil {
		return domain.Item{}, domain.ErrCategoryNotFound
	}

	item.CategoryID = category.ID
	item.Name = req.Name
	item.HSNCode = req.HSNCode
	item.SGSTPercent = req.SGSTPercent
	item.CGSTPercent = req.CGSTPercent
	item.TotalPrice = req.TotalPrice
	item.BasePrice = tax.BaseFromFinal(req.TotalPrice, req.SGSTPercent, req.CGSTPercent)
	item.Quantity = req.Quantity
	item.ImagePath = req.ImagePath
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateLoose(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Item{}, domain.ErrDuplicateItem
		}
		return domain.Item{}, err
	}

	return item.Record(category.Name), nil
}

func (s *Service) DeleteLooseItem(ctx context.Context, id string) error {
	itemID, err := parseID(id)
	if err != nil {
		return domain.ErrItemNotFound
	}
	item, err := s.repo.FindLooseByID(ctx, s.db, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	return s.repo.DeleteLoose(ctx, s.db, itemID)
}

func (s *Service) ListLooseItems(ctx context.Context, category string) ([]domain.Item, error) {
	category = strings.TrimSpace(category)

	categories, err := s.repo.ListCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}
	names := make(map[snowflake.ID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	var rows []*domain.LooseItem
	if category == "" || strings.EqualFold(category, "all") {
		rows, err = s.repo.ListLoose(ctx, s.db)
	} else {
		found, ferr := s.repo.FindCategoryByName(ctx, s.db, category)
		if ferr != nil {
			return nil, ferr
		}
		if found == nil {
			return nil, domain.ErrCategoryNotFound
		}
		rows, err = s.repo.ListLooseByCategory(ctx, s.db, found.ID)
	}
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.Record(names[row.CategoryID]))
	}
	return items, nil
}

func (s *Service) DecrementBarcodeStock(ctx context.Context, barcode string, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return s.repo.AdjustBarcodeStock(ctx, s.db, barcode, -quantity)
}

func validateBarcodeRequest(req *domain.UpsertBarcodeItemRequest) error {
	req.Barcode = strings.TrimSpace(req.Barcode)
	req.Name = strings.TrimSpace(req.Name)
	req.HSNCode = strings.TrimSpace(req.HSNCode)

	if req.Barcode == "" {
		return domain.ErrInvalidBarcode
	}
	if req.Name == "" {
		return domain.ErrInvalidName
	}
	if req.TotalPrice <= 0 {
		return domain.ErrInvalidPrice
	}
	if req.SGSTPercent < 0 || req.CGSTPercent < 0 {
		return domain.ErrInvalidTaxRate
	}
	if req.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

func validateLooseRequest(req *domain.UpsertLooseItemRequest) error {
	req.Category = strings.TrimSpace(req.Category)
	req.Name = strings.TrimSpace(req.Name)
	req.HSNCode = strings.TrimSpace(req.HSNCode)

	if req.Category == "" {
		return domain.ErrInvalidCategory
	}
	if req.Name == "" {
		return domain.ErrInvalidName
	}
	if req.TotalPrice <= 0 {
		return domain.ErrInvalidPrice
	}
	if req.SGSTPercent < 0 || req.CGSTPercent < 0 {
		return domain.ErrInvalidTaxRate
	}
	if req.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
