package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock y costo promedio inician en 0.
type CreateProductRequest struct {
	Name        string           `json:"nombre" validate:"required,min=2,max=100"`
	Description string           `json:"descripcion" validate:"omitempty,max=255"`
	MinStock    decimal.Decimal  `json:"stock_minimo" validate:"gte=0"`
	MaxStock    *decimal.Decimal `json:"stock_maximo" validate:"omitempty,gte=0"`
	UnitPrice   decimal.Decimal  `json:"precio_unitario" validate:"gte=0"`
	CategoryID  int64            `json:"id_categoria" validate:"required,gt=0"`
	UnitID      int64            `json:"id_unidad" validate:"required,gt=0"`
	ProviderID  int64            `json:"id_proveedor" validate:"required,gt=0"`
}

// UpdateProductRequest actualización parcial (sin stock ni costo promedio).
type UpdateProductRequest struct {
	Name        *string          `json:"nombre" validate:"omitempty,min=2,max=100"`
	Description *string          `json:"descripcion" validate:"omitempty,max=255"`
	MinStock    *decimal.Decimal `json:"stock_minimo" validate:"omitempty,gte=0"`
	MaxStock    *decimal.Decimal `json:"stock_maximo" validate:"omitempty,gte=0"`
	UnitPrice   *decimal.Decimal `json:"precio_unitario" validate:"omitempty,gte=0"`
	CategoryID  *int64           `json:"id_categoria" validate:"omitempty,gt=0"`
	UnitID      *int64           `json:"id_unidad" validate:"omitempty,gt=0"`
	ProviderID  *int64           `json:"id_proveedor" validate:"omitempty,gt=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64            `json:"id_producto"`
	Name        string           `json:"nombre"`
	Description string           `json:"descripcion"`
	Stock       decimal.Decimal  `json:"stock_actual"`
	MinStock    decimal.Decimal  `json:"stock_minimo"`
	MaxStock    *decimal.Decimal `json:"stock_maximo"`
	UnitPrice   decimal.Decimal  `json:"precio_unitario"`
	AverageCost decimal.Decimal  `json:"costo_promedio"`
	Active      bool             `json:"estado"`
	CategoryID  int64            `json:"id_categoria"`
	UnitID      int64            `json:"id_unidad"`
	ProviderID  int64            `json:"id_proveedor"`
	CreatedAt   time.Time        `json:"fecha_creacion"`
}
