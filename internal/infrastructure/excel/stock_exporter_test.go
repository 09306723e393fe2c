package excel

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
)

func TestExportStock_FilasYTotal(t *testing.T) {
	maxStock := decimal.NewFromInt(50)
	report := &dto.StockReportResponse{
		Items: []dto.StockItem{
			{ProductID: 1, Name: "Aceite", Category: "Lubricantes", Unit: "gal",
				Stock: decimal.NewFromInt(4), MinStock: decimal.NewFromInt(5), MaxStock: &maxStock,
				AverageCost: decimal.RequireFromString("2.5"), InventoryValue: decimal.NewFromInt(10), Alert: "BAJO"},
			{ProductID: 2, Name: "Filtro", Category: "Filtros", Unit: "u",
				Stock: decimal.NewFromInt(10), MinStock: decimal.NewFromInt(2),
				AverageCost: decimal.NewFromInt(1), InventoryValue: decimal.NewFromInt(10), Alert: "OK"},
		},
		TotalProducts: 2,
		LowStockCount: 1,
		TotalValue:    decimal.NewFromInt(20),
	}

	b, err := NewStockExporter().ExportStock(context.Background(), report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(StockSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4, "encabezado + 2 productos + total")
	assert.Equal(t, "Producto", rows[0][1])
	assert.Equal(t, "Aceite", rows[1][1])
	assert.Equal(t, "2.5", rows[1][7])
	assert.Equal(t, "BAJO", rows[1][10])
	assert.Equal(t, "", rows[2][6], "sin stock máximo")
	assert.Equal(t, "TOTAL", rows[3][8])
	assert.Equal(t, "20", rows[3][9])
}

func TestExportStock_ReporteVacio(t *testing.T) {
	b, err := NewStockExporter().ExportStock(context.Background(), &dto.StockReportResponse{TotalValue: decimal.Zero})
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{StockSheet}, f.GetSheetList())
}
