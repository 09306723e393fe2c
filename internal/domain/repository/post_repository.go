package repository

import (
	"context"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
)

// PostRepository puerto de persistencia para Post. GetByID, AddLike y AddComment devuelven
// nil, nil si el post no existe.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	List(ctx context.Context) ([]*entity.Post, error) // más recientes primero
	Update(ctx context.Context, p *entity.Post) error
	AddLike(ctx context.Context, id int64) (*entity.Post, error)
	AddComment(ctx context.Context, id int64) (*entity.Post, error)
	Delete(ctx context.Context, id int64) error
}

// ConfigImageRepository puerto de persistencia para ConfigImage.
type ConfigImageRepository interface {
	Create(ctx context.Context, img *entity.ConfigImage) error
	GetByID(ctx context.Context, id string) (*entity.ConfigImage, error)
	List(ctx context.Context) ([]*entity.ConfigImage, error)
	ListActiveBySection(ctx context.Context, section string) ([]*entity.ConfigImage, error)
	Update(ctx context.Context, img *entity.ConfigImage) error
	Delete(ctx context.Context, id string) error
}
