package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo.
const (
	WorkOrderPending    = "pendiente"
	WorkOrderInProgress = "en_proceso"
	WorkOrderCompleted  = "completada"
	WorkOrderCancelled  = "cancelada"
)

// WorkOrder orden de trabajo (OT). Se crea siempre junto con sus líneas y las salidas de inventario.
type WorkOrder struct {
	ID             int64
	Number         string // OT-<año>-NNN
	OrderDate      time.Time
	UnitNumber     string // número de unidad/vehículo atendido
	Description    string
	Status         string
	Notes          string
	AssignedUserID string
	ReviewerUserID string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Hidratados al leer.
	AssignedUser *User
	ReviewerUser *User
	Products     []WorkOrderProduct
}

// Total suma los costos totales de las líneas.
func (w *WorkOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range w.Products {
		total = total.Add(p.TotalCost)
	}
	return total
}

// WorkOrderProduct línea de una orden: producto consumido con su costo.
type WorkOrderProduct struct {
	ID          int64
	WorkOrderID int64
	ProductID   int64
	ProductName string
	Quantity    decimal.Decimal
	Unit        string
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal // Quantity × UnitCost
}

// WorkOrderStats conteos por estado sobre órdenes activas.
type WorkOrderStats struct {
	Total      int64
	Pending    int64
	InProgress int64
	Completed  int64
	Cancelled  int64
}

// WorkOrderFilter filtros del listado. Vacío = sin filtro.
type WorkOrderFilter struct {
	Status string
	UserID string // asignado o revisor
}
