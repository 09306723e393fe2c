package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
	"github.com/jhoicas/operaciones-api/pkg/logger"
)

const (
	// MaxPostImages imágenes por post.
	MaxPostImages = 10
	postsFolder   = "posts"
)

// PostUseCase muro de publicaciones con imágenes, likes y contador de comentarios.
type PostUseCase struct {
	repo   repository.PostRepository
	images ImageStore
	log    *logger.Logger
}

// NewPostUseCase construye el caso de uso.
func NewPostUseCase(repo repository.PostRepository, images ImageStore, log *logger.Logger) *PostUseCase {
	return &PostUseCase{repo: repo, images: images, log: log.Component("posts")}
}

// Create guarda las imágenes y luego el post. Si algo falla se borran las imágenes ya guardadas.
func (uc *PostUseCase) Create(ctx context.Context, in dto.CreatePostRequest, files []Upload) (*dto.PostResponse, error) {
	if len(files) > MaxPostImages {
		return nil, fmt.Errorf("%w: máximo %d imágenes", domain.ErrInvalidInput, MaxPostImages)
	}
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := uc.images.Save(ctx, postsFolder, f)
		if err != nil {
			uc.discard(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	p := &entity.Post{UserName: in.UserName, Content: in.Content, ImageURLs: urls}
	if err := uc.repo.Create(ctx, p); err != nil {
		uc.discard(ctx, urls)
		return nil, err
	}
	uc.log.Info().Int64("post", p.ID).Int("imagenes", len(urls)).Msg("post creado")
	return toPostResponse(p), nil
}

// List todos los posts, más recientes primero.
func (uc *PostUseCase) List(ctx context.Context) ([]dto.PostResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PostResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPostResponse(p))
	}
	return out, nil
}

func (uc *PostUseCase) GetByID(ctx context.Context, id int64) (*dto.PostResponse, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPostResponse(p), nil
}

func (uc *PostUseCase) Update(ctx context.Context, id int64, in dto.UpdatePostRequest) (*dto.PostResponse, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Likes != nil {
		p.Likes = *in.Likes
	}
	if in.Comments != nil {
		p.Comments = *in.Comments
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPostResponse(p), nil
}

// Like suma un like.
func (uc *PostUseCase) Like(ctx context.Context, id int64) (*dto.PostResponse, error) {
	return uc.bump(uc.repo.AddLike(ctx, id))
}

// Comment suma uno al contador de comentarios.
func (uc *PostUseCase) Comment(ctx context.Context, id int64) (*dto.PostResponse, error) {
	return uc.bump(uc.repo.AddComment(ctx, id))
}

func (uc *PostUseCase) bump(p *entity.Post, err error) (*dto.PostResponse, error) {
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPostResponse(p), nil
}

// Remove borra el post y después sus imágenes.
func (uc *PostUseCase) Remove(ctx context.Context, id int64) error {
	p, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.discard(ctx, p.ImageURLs)
	uc.log.Info().Int64("post", id).Msg("post eliminado")
	return nil
}

func (uc *PostUseCase) find(ctx context.Context, id int64) (*entity.Post, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// discard borra imágenes huérfanas; un fallo sólo se registra.
func (uc *PostUseCase) discard(ctx context.Context, urls []string) {
	for _, u := range urls {
		if err := uc.images.Delete(ctx, u); err != nil {
			uc.log.Warn().Err(err).Str("url", u).Msg("no se pudo borrar la imagen")
		}
	}
}

func toPostResponse(p *entity.Post) *dto.PostResponse {
	urls := p.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	return &dto.PostResponse{
		ID:        p.ID,
		UserName:  p.UserName,
		Content:   p.Content,
		Likes:     p.Likes,
		Comments:  p.Comments,
		ImageURLs: urls,
		CreatedAt: p.CreatedAt,
	}
}
