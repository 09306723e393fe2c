package repository

import (
	"context"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para Category. GetByID devuelve nil, nil si no existe.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	ListActive(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Deactivate(ctx context.Context, id int64) error
}

// UnitRepository puerto de persistencia para Unit.
type UnitRepository interface {
	Create(ctx context.Context, u *entity.Unit) error
	GetByID(ctx context.Context, id int64) (*entity.Unit, error)
	ListActive(ctx context.Context) ([]*entity.Unit, error)
	Update(ctx context.Context, u *entity.Unit) error
	Deactivate(ctx context.Context, id int64) error
}

// ProviderRepository puerto de persistencia para Provider.
type ProviderRepository interface {
	Create(ctx context.Context, p *entity.Provider) error
	GetByID(ctx context.Context, id int64) (*entity.Provider, error)
	ListActive(ctx context.Context) ([]*entity.Provider, error)
	Update(ctx context.Context, p *entity.Provider) error
	Deactivate(ctx context.Context, id int64) error
}
