package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderLineRequest producto solicitado en una orden.
type WorkOrderLineRequest struct {
	ProductID   int64           `json:"id_producto" validate:"required,gt=0"`
	ProductName string          `json:"nombre_producto" validate:"required,max=100"`
	Quantity    decimal.Decimal `json:"cantidad" validate:"gte=0.01"`
	Unit        string          `json:"unidad" validate:"required,max=20"`
	UnitCost    decimal.Decimal `json:"costo_unitario" validate:"gte=0"`
}

// CreateWorkOrderRequest alta de orden de trabajo con sus productos.
// OrderDate acepta RFC3339 o AAAA-MM-DD.
type CreateWorkOrderRequest struct {
	OrderDate      string                 `json:"fecha_orden" validate:"required"`
	UnitNumber     string                 `json:"numero_unidad" validate:"required,max=50"`
	Description    string                 `json:"descripcion" validate:"required"`
	Notes          string                 `json:"observaciones"`
	AssignedUserID string                 `json:"id_usuario_asignado" validate:"required,uuid4"`
	ReviewerUserID string                 `json:"id_usuario_revisor" validate:"required,uuid4"`
	Products       []WorkOrderLineRequest `json:"productos" validate:"required,min=1,dive"`
}

// UpdateWorkOrderRequest actualización parcial de la cabecera. Las líneas no se modifican.
type UpdateWorkOrderRequest struct {
	OrderDate      *string `json:"fecha_orden"`
	UnitNumber     *string `json:"numero_unidad" validate:"omitempty,max=50"`
	Description    *string `json:"descripcion" validate:"omitempty,min=1"`
	Notes          *string `json:"observaciones"`
	Status         *string `json:"estado" validate:"omitempty,oneof=pendiente en_proceso completada cancelada"`
	AssignedUserID *string `json:"id_usuario_asignado" validate:"omitempty,uuid4"`
	ReviewerUserID *string `json:"id_usuario_revisor" validate:"omitempty,uuid4"`
}

// UpdateWorkOrderStatusRequest cambio de estado.
type UpdateWorkOrderStatusRequest struct {
	Status string `json:"estado" validate:"required,oneof=pendiente en_proceso completada cancelada"`
}

// WorkOrderLineResponse línea de la orden.
type WorkOrderLineResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"id_producto"`
	ProductName string          `json:"nombre_producto"`
	Quantity    decimal.Decimal `json:"cantidad"`
	Unit        string          `json:"unidad"`
	UnitCost    decimal.Decimal `json:"costo_unitario"`
	TotalCost   decimal.Decimal `json:"costo_total"`
}

// WorkOrderUser resumen del usuario asignado/revisor.
type WorkOrderUser struct {
	ID        string `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"correo"`
	Role      string `json:"role"`
}

// WorkOrderResponse orden hidratada con usuarios y líneas.
type WorkOrderResponse struct {
	ID             int64                   `json:"id_orden"`
	Number         string                  `json:"numero_orden"`
	OrderDate      time.Time               `json:"fecha_orden"`
	UnitNumber     string                  `json:"numero_unidad"`
	Description    string                  `json:"descripcion"`
	Status         string                  `json:"estado"`
	Notes          string                  `json:"observaciones"`
	AssignedUserID string                  `json:"id_usuario_asignado"`
	ReviewerUserID string                  `json:"id_usuario_revisor"`
	AssignedUser   *WorkOrderUser          `json:"usuario_asignado,omitempty"`
	ReviewerUser   *WorkOrderUser          `json:"usuario_revisor,omitempty"`
	Products       []WorkOrderLineResponse `json:"productos"`
	Total          decimal.Decimal         `json:"total"`
	CreatedAt      time.Time               `json:"fecha_creacion"`
	UpdatedAt      time.Time               `json:"fecha_actualizacion"`
}

// WorkOrderStatsResponse conteos por estado.
type WorkOrderStatsResponse struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pendientes"`
	InProgress int64 `json:"enProceso"`
	Completed  int64 `json:"completadas"`
	Cancelled  int64 `json:"canceladas"`
}
