package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry entrada de inventario (compra a proveedor). Inmutable salvo eliminación.
type Entry struct {
	ID            int64
	ProductID     int64
	ProviderID    int64
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Total         decimal.Decimal // Quantity × UnitPrice
	InvoiceNumber string
	Note          string
	Date          time.Time

	// Sólo lectura, llenados por los listados.
	ProductName  string
	ProviderName string
}

// Exit salida de inventario. UnitCost es el costo promedio del producto al momento de la salida
// y no se recalcula después.
type Exit struct {
	ID        int64
	ProductID int64
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Reason    string // motivo
	Reference string
	Note      string
	Date      time.Time

	ProductName string
}

// Motivo y prefijo de observación de las salidas generadas por órdenes de trabajo.
const (
	ExitReasonWorkOrder     = "Orden de Trabajo"
	ExitNotePrefixWorkOrder = "OT: "
)
