package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kiranapos/kirana/internal/item/domain"
	"go.uber.org/zap"
)

// CSV headers, in order. Both formats share the trailing numeric columns.
var (
	barcodeCSVHeader = []string{"barcode", "name", "hsn_code", "quantity", "sgst", "cgst", "total_price"}
	looseCSVHeader   = []string{"category", "name", "hsn_code", "quantity", "sgst", "cgst", "total_price"}
)

// ImportBarcodeCSV reads barcode items from r. Rows with missing required
// fields, malformed numbers or duplicate barcodes are skipped and reported
// by row number; the rest of the batch still imports.
func (s *Service) ImportBarcodeCSV(ctx context.Context, r io.Reader) (domain.ImportReport, error) {
	var report domain.ImportReport

	rows, err := readCSV(r, barcodeCSVHeader)
	if err != nil {
		return report, err
	}

	for _, row := range rows {
		req := domain.UpsertBarcodeItemRequest{
			Barcode: row.fields[0],
			Name:    row.fields[1],
			HSNCode: row.fields[2],
		}
		var parseErr error
		req.Quantity, req.SGSTPercent, req.CGSTPercent, req.TotalPrice, parseErr = parseNumericColumns(row.fields)
		if parseErr != nil {
			report.Skipped = append(report.Skipped, domain.SkipEntry{Row: row.number, Reason: parseErr.Error()})
			continue
		}

		if _, err := s.AddBarcodeItem(ctx, req); err != nil {
			report.Skipped = append(report.Skipped, domain.SkipEntry{Row: row.number, Reason: err.Error()})
			continue
		}
		report.Imported++
	}

	s.log.Info("barcode csv import finished",
		zap.Int("imported", report.Imported), zap.Int("skipped", len(report.Skipped)))
	return report, nil
}

// ImportLooseCSV reads loose items from r. The category column must name an
// existing category; duplicate (category, name, hsn_code) triples are skipped.
func (s *Service) ImportLooseCSV(ctx context.Context, r io.Reader) (domain.ImportReport, error) {
	var report domain.ImportReport

	rows, err := readCSV(r, looseCSVHeader)
	if err != nil {
		return report, err
	}

	for _, row := range rows {
		req := domain.UpsertLooseItemRequest{
			Category: row.fields[0],
			Name:     row.fields[1],
			HSNCode:  row.fields[2],
		}
		var parseErr error
		req.Quantity, req.SGSTPercent, req.CGSTPercent, req.TotalPrice, parseErr = parseNumericColumns(row.fields)
		if parseErr != nil {
			report.Skipped = append(report.Skipped, domain.SkipEntry{Row: row.number, Reason: parseErr.Error()})
			continue
		}

		if _, err := s.AddLooseItem(ctx, req); err != nil {
			report.Skipped = append(report.Skipped, domain.SkipEntry{Row: row.number, Reason: err.Error()})
			continue
		}
		report.Imported++
	}

	s.log.Info("loose csv import finished",
		zap.Int("imported", report.Imported), zap.Int("skipped", len(report.Skipped)))
	return report, nil
}

type csvRow struct {
	// number is the 1-based spreadsheet row (header is row 1).
	number int
	fields []string
}

func readCSV(r io.Reader, wantHeader []string) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New("csv file is empty")
	}
	if !headerMatches(header, wantHeader) {
		return nil, fmt.Errorf("expected header %q", strings.Join(wantHeader, ","))
	}

	var rows []csvRow
	number := 1
	for {
		record, err := reader.Read()
		number++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed line: skip it as a row-level problem.
			rows = append(rows, csvRow{number: number, fields: nil})
			continue
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		rows = append(rows, csvRow{number: number, fields: record})
	}

	// Pad short rows so the per-row validation reports the real problem.
	for i := range rows {
		for len(rows[i].fields) < len(wantHeader) {
			rows[i].fields = append(rows[i].fields, "")
		}
	}
	return rows, nil
}

func headerMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if !strings.EqualFold(strings.TrimSpace(got[i]), want[i]) {
			return false
		}
	}
	return true
}

// parseNumericColumns parses quantity,sgst,cgst,total_price (columns 3-6).
func parseNumericColumns(fields []string) (quantity int, sgst, cgst, totalPrice float64, err error) {
	quantity, err = strconv.Atoi(emptyZero(fields[3]))
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid quantity %q", fields[3])
	}
	sgst, err = strconv.ParseFloat(emptyZero(fields[4]), 64)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid sgst %q", fields[4])
	}
	cgst, err = strconv.ParseFloat(emptyZero(fields[5]), 64)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid cgst %q", fields[5])
	}
	totalPrice, err = strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid total_price %q", fields[6])
	}
	return quantity, sgst, cgst, totalPrice, nil
}

func emptyZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
