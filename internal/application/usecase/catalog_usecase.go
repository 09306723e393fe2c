package usecase

import (
	"context"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías con baja lógica.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &entity.Category{Name: in.Name, Description: in.Description, CodePrefix: in.CodePrefix, Active: true}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.active(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.active(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.CodePrefix != nil {
		c.CodePrefix = *in.CodePrefix
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete baja lógica (estado = false).
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.active(ctx, id); err != nil {
		return err
	}
	return uc.repo.Deactivate(ctx, id)
}

func (uc *CategoryUseCase) active(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.Active {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CodePrefix: c.CodePrefix, Active: c.Active}
}

// UnitUseCase CRUD de unidades de medida con baja lógica.
type UnitUseCase struct {
	repo repository.UnitRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo}
}

func (uc *UnitUseCase) Create(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	u := &entity.Unit{Name: in.Name, Abbreviation: in.Abbreviation, Description: in.Description, Active: true}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

func (uc *UnitUseCase) List(ctx context.Context) ([]dto.UnitResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUnitResponse(u))
	}
	return out, nil
}

func (uc *UnitUseCase) GetByID(ctx context.Context, id int64) (*dto.UnitResponse, error) {
	u, err := uc.active(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

func (uc *UnitUseCase) Update(ctx context.Context, id int64, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	u, err := uc.active(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Abbreviation != nil {
		u.Abbreviation = *in.Abbreviation
	}
	if in.Description != nil {
		u.Description = *in.Description
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

func (uc *UnitUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.active(ctx, id); err != nil {
		return err
	}
	return uc.repo.Deactivate(ctx, id)
}

func (uc *UnitUseCase) active(ctx context.Context, id int64) (*entity.Unit, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Active {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	return &dto.UnitResponse{ID: u.ID, Name: u.Name, Abbreviation: u.Abbreviation, Description: u.Description, Active: u.Active}
}

// ProviderUseCase CRUD de proveedores con baja lógica.
type ProviderUseCase struct {
	repo repository.ProviderRepository
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{repo: repo}
}

func (uc *ProviderUseCase) Create(ctx context.Context, in dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	p := &entity.Provider{Name: in.Name, RUC: in.RUC, Phone: in.Phone, Email: in.Email, Address: in.Address, Active: true}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

func (uc *ProviderUseCase) List(ctx context.Context) ([]dto.ProviderResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProviderResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProviderResponse(p))
	}
	return out, nil
}

func (uc *ProviderUseCase) GetByID(ctx context.Context, id int64) (*dto.ProviderResponse, error) {
	p, err := uc.active(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

func (uc *ProviderUseCase) Update(ctx context.Context, id int64, in dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	p, err := uc.active(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.RUC != nil {
		p.RUC = *in.RUC
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

func (uc *ProviderUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.active(ctx, id); err != nil {
		return err
	}
	return uc.repo.Deactivate(ctx, id)
}

func (uc *ProviderUseCase) active(ctx context.Context, id int64) (*entity.Provider, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Active {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func toProviderResponse(p *entity.Provider) *dto.ProviderResponse {
	return &dto.ProviderResponse{ID: p.ID, Name: p.Name, RUC: p.RUC, Phone: p.Phone, Email: p.Email, Address: p.Address, Active: p.Active}
}
