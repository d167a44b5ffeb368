package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportBarcodeCSV(t *testing.T) {
	svc := newTestService(t).(*Service)
	ctx := context.Background()

	csvData := strings.Join([]string{
		"barcode,name,hsn_code,quantity,sgst,cgst,total_price",
		"8901,Biscuits,1905,10,6,6,110.00",
		",Missing Barcode,1905,5,6,6,50.00",
		"8902,Bad Price,1905,5,6,6,abc",
		"8901,Duplicate,1905,1,6,6,99.00",
		"8903,Salt,2501,40,0,0,22.00",
	}, "\n")

	report, err := svc.ImportBarcodeCSV(ctx, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Imported)
	require.Len(t, report.Skipped, 3)
	// Row numbers are spreadsheet rows: header is row 1.
	assert.Equal(t, 3, report.Skipped[0].Row)
	assert.Equal(t, 4, report.Skipped[1].Row)
	assert.Contains(t, report.Skipped[1].Reason, "total_price")
	assert.Equal(t, 5, report.Skipped[2].Row)
	assert.Contains(t, report.Skipped[2].Reason, "barcode already exists")

	item, err := svc.GetByBarcode(ctx, "8901")
	require.NoError(t, err)
	assert.Equal(t, "Biscuits", item.Name)
	assert.InDelta(t, 110.00/1.12, item.BasePrice, 1e-9)
}

func TestImportBarcodeCSV_BadHeader(t *testing.T) {
	svc := newTestService(t).(*Service)
	_, err := svc.ImportBarcodeCSV(context.Background(), strings.NewReader("a,b,c\n1,2,3"))
	assert.Error(t, err)
}

func TestImportLooseCSV(t *testing.T) {
	svc := newTestService(t).(*Service)
	ctx := context.Background()

	_, err := svc.AddCategory(ctx, "Grains")
	require.NoError(t, err)

	csvData := strings.Join([]string{
		"category,name,hsn_code,quantity,sgst,cgst,total_price",
		"Grains,Rice,1006,50,2.5,2.5,84.00",
		"Spices,Turmeric,0910,10,2.5,2.5,200.00",
		"Grains,Rice,1006,10,2.5,2.5,84.00",
	}, "\n")

	report, err := svc.ImportLooseCSV(ctx, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Skipped, 2)
	assert.Contains(t, report.Skipped[0].Reason, "category not found")
	assert.Contains(t, report.Skipped[1].Reason, "already exists")

	items, err := svc.ListLooseItems(ctx, "Grains")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 80.00, items[0].BasePrice, 1e-9)
}
