package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntryRequest entrada de inventario (compra).
type CreateEntryRequest struct {
	ProductID     int64           `json:"id_producto" validate:"required,gt=0"`
	ProviderID    int64           `json:"id_proveedor" validate:"required,gt=0"`
	Quantity      decimal.Decimal `json:"cantidad" validate:"gt=0"`
	UnitPrice     decimal.Decimal `json:"precio_unitario" validate:"gt=0"`
	InvoiceNumber string          `json:"numero_factura" validate:"omitempty,max=10"`
	Note          string          `json:"observacion" validate:"omitempty,max=500"`
}

// EntryResponse salida de una entrada.
type EntryResponse struct {
	ID            int64           `json:"id_entrada"`
	ProductID     int64           `json:"id_producto"`
	ProductName   string          `json:"producto,omitempty"`
	ProviderID    int64           `json:"id_proveedor"`
	ProviderName  string          `json:"proveedor,omitempty"`
	Quantity      decimal.Decimal `json:"cantidad"`
	UnitPrice     decimal.Decimal `json:"precio_unitario"`
	Total         decimal.Decimal `json:"total"`
	InvoiceNumber string          `json:"numero_factura"`
	Note          string          `json:"observacion"`
	Date          time.Time       `json:"fecha_entrada"`
}

// CreateExitRequest salida manual de inventario.
type CreateExitRequest struct {
	ProductID int64           `json:"id_producto" validate:"required,gt=0"`
	Quantity  decimal.Decimal `json:"cantidad" validate:"gt=0"`
	Reason    string          `json:"motivo" validate:"required,min=3,max=100"`
	Reference string          `json:"referencia" validate:"omitempty,max=50"`
	Note      string          `json:"observacion" validate:"omitempty,max=500"`
}

// ExitResponse salida de una salida.
type ExitResponse struct {
	ID          int64           `json:"id_salida"`
	ProductID   int64           `json:"id_producto"`
	ProductName string          `json:"producto,omitempty"`
	Quantity    decimal.Decimal `json:"cantidad"`
	UnitCost    decimal.Decimal `json:"costo_unitario"`
	Reason      string          `json:"motivo"`
	Reference   string          `json:"referencia"`
	Note        string          `json:"observacion"`
	Date        time.Time       `json:"fecha_salida"`
}

// StockItem fila del reporte de stock valorizado.
type StockItem struct {
	ProductID      int64            `json:"id_producto"`
	Name           string           `json:"nombre"`
	Category       string           `json:"categoria"`
	Unit           string           `json:"unidad"`
	Stock          decimal.Decimal  `json:"stock_actual"`
	MinStock       decimal.Decimal  `json:"stock_minimo"`
	MaxStock       *decimal.Decimal `json:"stock_maximo"`
	AverageCost    decimal.Decimal  `json:"costo_promedio"`
	UnitPrice      decimal.Decimal  `json:"precio_unitario"`
	InventoryValue decimal.Decimal  `json:"valor_inventario"`
	Alert          string           `json:"alerta"` // BAJO | OK
}

// StockReportResponse reporte de stock con totales.
type StockReportResponse struct {
	Items         []StockItem     `json:"items"`
	TotalProducts int             `json:"total_productos"`
	LowStockCount int             `json:"productos_stock_bajo"`
	TotalValue    decimal.Decimal `json:"valor_total"`
}
