package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
	"github.com/jhoicas/operaciones-api/pkg/logger"
)

const configFolder = "config"

// ConfigImageUseCase imágenes del sitio por sección. Eliminar borra la fila y el archivo.
type ConfigImageUseCase struct {
	repo   repository.ConfigImageRepository
	images ImageStore
	log    *logger.Logger
}

// NewConfigImageUseCase construye el caso de uso.
func NewConfigImageUseCase(repo repository.ConfigImageRepository, images ImageStore, log *logger.Logger) *ConfigImageUseCase {
	return &ConfigImageUseCase{repo: repo, images: images, log: log.Component("configuration")}
}

// Create guarda el archivo y registra la imagen activa.
func (uc *ConfigImageUseCase) Create(ctx context.Context, in dto.CreateConfigImageRequest, file *Upload) (*dto.ConfigImageResponse, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, fmt.Errorf("%w: imagen requerida", domain.ErrInvalidInput)
	}
	url, err := uc.images.Save(ctx, configFolder, *file)
	if err != nil {
		return nil, err
	}
	img := &entity.ConfigImage{
		Section:     in.Section,
		ImageURL:    url,
		Title:       in.Title,
		Description: in.Description,
		Active:      true,
	}
	if err := uc.repo.Create(ctx, img); err != nil {
		if derr := uc.images.Delete(ctx, url); derr != nil {
			uc.log.Warn().Err(derr).Str("url", url).Msg("no se pudo borrar la imagen")
		}
		return nil, err
	}
	uc.log.Info().Str("imagen", img.ID).Str("seccion", img.Section).Msg("imagen de configuración creada")
	return toConfigImageResponse(img), nil
}

// List todas las imágenes, activas o no.
func (uc *ConfigImageUseCase) List(ctx context.Context) ([]dto.ConfigImageResponse, error) {
	return toConfigImageResponses(uc.repo.List(ctx))
}

// ListBySection imágenes activas de la sección, más recientes primero.
func (uc *ConfigImageUseCase) ListBySection(ctx context.Context, section string) ([]dto.ConfigImageResponse, error) {
	return toConfigImageResponses(uc.repo.ListActiveBySection(ctx, section))
}

func (uc *ConfigImageUseCase) Update(ctx context.Context, id string, in dto.UpdateConfigImageRequest) (*dto.ConfigImageResponse, error) {
	img, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Section != nil {
		img.Section = *in.Section
	}
	if in.Title != nil {
		img.Title = *in.Title
	}
	if in.Description != nil {
		img.Description = *in.Description
	}
	if in.Active != nil {
		img.Active = *in.Active
	}
	if err := uc.repo.Update(ctx, img); err != nil {
		return nil, err
	}
	return toConfigImageResponse(img), nil
}

func (uc *ConfigImageUseCase) Remove(ctx context.Context, id string) error {
	img, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.images.Delete(ctx, img.ImageURL); err != nil {
		uc.log.Warn().Err(err).Str("url", img.ImageURL).Msg("no se pudo borrar la imagen")
	}
	uc.log.Info().Str("imagen", id).Msg("imagen de configuración eliminada")
	return nil
}

// find un id que no es uuid no puede existir.
func (uc *ConfigImageUseCase) find(ctx context.Context, id string) (*entity.ConfigImage, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	img, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, domain.ErrNotFound
	}
	return img, nil
}

func toConfigImageResponses(list []*entity.ConfigImage, err error) ([]dto.ConfigImageResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConfigImageResponse, 0, len(list))
	for _, img := range list {
		out = append(out, *toConfigImageResponse(img))
	}
	return out, nil
}

func toConfigImageResponse(img *entity.ConfigImage) *dto.ConfigImageResponse {
	return &dto.ConfigImageResponse{
		ID:          img.ID,
		Section:     img.Section,
		ImageURL:    img.ImageURL,
		Title:       img.Title,
		Description: img.Description,
		Active:      img.Active,
		CreatedAt:   img.CreatedAt,
	}
}
