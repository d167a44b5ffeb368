package domain

import (
	"context"
	"io"
	"time"

	"github.com/kiranapos/kirana/pkg/db/pagination"
)

// Service finalizes and stores bills and serves bill history.
type Service interface {
	// Finalize snapshots the draft lines into an immutable bill and saves
	// it. It rejects an empty line set or a blank customer name, and
	// normalizes the phone number when one is supplied. On success the
	// barcode lines' stock is decremented.
	Finalize(ctx context.Context, req FinalizeRequest) (Detail, error)

	GetByID(ctx context.Context, id string) (Detail, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)

	// ExportCSV writes the canonical bill-history CSV for the given range.
	ExportCSV(ctx context.Context, req ExportRequest, w io.Writer) error
}

// FinalizeRequest carries the in-progress bill at save time.
type FinalizeRequest struct {
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Lines         []DraftLine `json:"lines"`
}

type ListRequest struct {
	pagination.Pagination
	CustomerName string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

type ListResponse struct {
	Bills    []Bill              `json:"bills"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

// ExportRequest selects the bills to export. IncludeLines switches between
// the bill-level export and the per-line export.
type ExportRequest struct {
	From         time.Time
	To           time.Time
	IncludeLines bool
}
