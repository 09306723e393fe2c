package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Stock y AverageCost son valores derivados del libro de entradas/salidas y se guardan como caché;
// sólo el recalculador de inventario los escribe.
type Product struct {
	ID          int64
	Name        string
	Description string
	Stock       decimal.Decimal  // stock_actual = Σ entradas − Σ salidas
	MinStock    decimal.Decimal  // umbral de alerta BAJO
	MaxStock    *decimal.Decimal // opcional
	UnitPrice   decimal.Decimal  // precio de referencia
	AverageCost decimal.Decimal  // costo promedio ponderado sobre todas las entradas
	Active      bool
	CategoryID  int64
	UnitID      int64
	ProviderID  int64
	CreatedAt   time.Time
}

// IsLowStock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Stock.LessThanOrEqual(p.MinStock)
}

// ProductStock fila del reporte de stock: producto con nombres de categoría y unidad.
type ProductStock struct {
	Product
	CategoryName     string
	UnitAbbreviation string
}
