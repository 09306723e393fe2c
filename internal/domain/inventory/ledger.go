package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
)

// CurrentStock stock_actual = Σ cantidades de entradas − Σ cantidades de salidas.
// Puede quedar negativo si se elimina una entrada ya consumida por salidas.
func CurrentStock(entriesQty, exitsQty decimal.Decimal) decimal.Decimal {
	return entriesQty.Sub(exitsQty)
}

// AverageCost costo promedio ponderado sobre todas las entradas:
// Σ(cantidad × precio_unitario) / Σ cantidad, o cero si no hay cantidad.
// Las salidas no participan; sólo leen el valor vigente.
func AverageCost(entries []*entity.Entry) decimal.Decimal {
	totalCost := decimal.Zero
	totalQty := decimal.Zero
	for _, e := range entries {
		totalCost = totalCost.Add(e.Quantity.Mul(e.UnitPrice))
		totalQty = totalQty.Add(e.Quantity)
	}
	if totalQty.IsZero() {
		return decimal.Zero
	}
	return totalCost.Div(totalQty)
}

// LineTotal cantidad × precio (total de entrada o costo_total de línea de OT).
func LineTotal(qty, price decimal.Decimal) decimal.Decimal {
	return qty.Mul(price)
}

// StockAlert "BAJO" si stock ≤ mínimo, "OK" en otro caso.
func StockAlert(stock, minStock decimal.Decimal) string {
	if stock.LessThanOrEqual(minStock) {
		return AlertLow
	}
	return AlertOK
}

// Valores de alerta del reporte de stock.
const (
	AlertLow = "BAJO"
	AlertOK  = "OK"
)
