package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	invdomain "github.com/jhoicas/operaciones-api/internal/domain/inventory"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

// StockReportUseCase reporte de stock valorizado de productos activos.
type StockReportUseCase struct {
	productRepo repository.ProductRepository
	exporter    StockExporter
}

// NewStockReportUseCase construye el caso de uso. exporter puede ser nil si no se exporta.
func NewStockReportUseCase(productRepo repository.ProductRepository, exporter StockExporter) *StockReportUseCase {
	return &StockReportUseCase{productRepo: productRepo, exporter: exporter}
}

// Report valor_inventario = stock_actual × costo_promedio; alerta BAJO si stock ≤ mínimo.
func (uc *StockReportUseCase) Report(ctx context.Context) (*dto.StockReportResponse, error) {
	rows, err := uc.productRepo.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.StockReportResponse{Items: make([]dto.StockItem, 0, len(rows)), TotalValue: decimal.Zero}
	for _, p := range rows {
		item := dto.StockItem{
			ProductID:      p.ID,
			Name:           p.Name,
			Category:       p.CategoryName,
			Unit:           p.UnitAbbreviation,
			Stock:          p.Stock,
			MinStock:       p.MinStock,
			MaxStock:       p.MaxStock,
			AverageCost:    p.AverageCost,
			UnitPrice:      p.UnitPrice,
			InventoryValue: p.Stock.Mul(p.AverageCost),
			Alert:          invdomain.StockAlert(p.Stock, p.MinStock),
		}
		if item.Alert == invdomain.AlertLow {
			out.LowStockCount++
		}
		out.TotalValue = out.TotalValue.Add(item.InventoryValue)
		out.Items = append(out.Items, item)
	}
	out.TotalProducts = len(out.Items)
	return out, nil
}

// Export genera el reporte en el formato del exportador configurado (xlsx).
func (uc *StockReportUseCase) Export(ctx context.Context) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("exportador de stock no configurado")
	}
	report, err := uc.Report(ctx)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportStock(ctx, report)
}
