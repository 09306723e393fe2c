package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product.
// Update no toca Stock ni AverageCost; esos campos sólo cambian con UpdateStock/UpdateAverageCost.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	ListActive(ctx context.Context) ([]*entity.Product, error)
	ListStock(ctx context.Context) ([]*entity.ProductStock, error)
	Update(ctx context.Context, p *entity.Product) error
	Deactivate(ctx context.Context, id int64) error
	UpdateStock(ctx context.Context, id int64, stock decimal.Decimal) error
	UpdateAverageCost(ctx context.Context, id int64, cost decimal.Decimal) error
}
