// Package excel exporta reportes a .xlsx con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/application/inventory"
)

var _ inventory.StockExporter = (*StockExporter)(nil)

// StockSheet nombre de la hoja del reporte de stock.
const StockSheet = "Stock"

var stockHeadings = []string{
	"ID", "Producto", "Categoría", "Unidad", "Stock actual", "Stock mínimo", "Stock máximo",
	"Costo promedio", "Precio unitario", "Valor inventario", "Alerta",
}

// StockExporter genera el reporte de stock valorizado en una hoja de cálculo.
type StockExporter struct{}

// NewStockExporter construye el exportador.
func NewStockExporter() *StockExporter { return &StockExporter{} }

// ExportStock una fila por producto más una fila final con el valor total del inventario.
func (e *StockExporter) ExportStock(_ context.Context, report *dto.StockReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StockSheet); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	for i, h := range stockHeadings {
		if err := setCell(f, i+1, 1, h); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(stockHeadings), 1)
	if err := f.SetCellStyle(StockSheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("excel: estilo encabezado: %w", err)
	}

	rowNo := 2
	for _, it := range report.Items {
		var maxStock any
		if it.MaxStock != nil {
			maxStock = it.MaxStock.InexactFloat64()
		}
		values := []any{
			it.ProductID, it.Name, it.Category, it.Unit,
			it.Stock.InexactFloat64(), it.MinStock.InexactFloat64(), maxStock,
			it.AverageCost.InexactFloat64(), it.UnitPrice.InexactFloat64(),
			it.InventoryValue.InexactFloat64(), it.Alert,
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			if err := setCell(f, col+1, rowNo, v); err != nil {
				return nil, err
			}
		}
		rowNo++
	}

	// Totales: etiqueta en la columna de precio y valor total bajo "Valor inventario".
	if err := setCell(f, 9, rowNo, "TOTAL"); err != nil {
		return nil, err
	}
	if err := setCell(f, 10, rowNo, report.TotalValue.InexactFloat64()); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("excel: celda: %w", err)
	}
	if err := f.SetCellValue(StockSheet, cell, value); err != nil {
		return fmt.Errorf("excel: escribir %s: %w", cell, err)
	}
	return nil
}
