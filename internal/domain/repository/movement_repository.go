package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
)

// EntryRepository libro de entradas.
type EntryRepository interface {
	Create(ctx context.Context, e *entity.Entry) error
	GetByID(ctx context.Context, id int64) (*entity.Entry, error)
	List(ctx context.Context) ([]*entity.Entry, error)
	Delete(ctx context.Context, id int64) error
	// SumQuantity Σ cantidad de las entradas del producto (cero si no hay).
	SumQuantity(ctx context.Context, productID int64) (decimal.Decimal, error)
	// ListByProduct entradas del producto ordenadas por fecha_entrada ascendente.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Entry, error)
}

// ExitRepository libro de salidas.
type ExitRepository interface {
	Create(ctx context.Context, e *entity.Exit) error
	GetByID(ctx context.Context, id int64) (*entity.Exit, error)
	List(ctx context.Context) ([]*entity.Exit, error)
	Delete(ctx context.Context, id int64) error
	SumQuantity(ctx context.Context, productID int64) (decimal.Decimal, error)
}
