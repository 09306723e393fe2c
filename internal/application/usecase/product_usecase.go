package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. Stock y costo promedio sólo cambian vía entradas/salidas.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	providerRepo repository.ProviderRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	providerRepo repository.ProviderRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, unitRepo: unitRepo, providerRepo: providerRepo}
}

// Create crea un producto con stock y costo promedio en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.checkRefs(ctx, in.CategoryID, in.UnitID, in.ProviderID); err != nil {
		return nil, err
	}
	if in.MaxStock != nil && in.MaxStock.LessThan(in.MinStock) {
		return nil, fmt.Errorf("%w: stock_maximo menor que stock_minimo", domain.ErrInvalidInput)
	}
	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Stock:       decimal.Zero,
		MinStock:    in.MinStock,
		MaxStock:    in.MaxStock,
		UnitPrice:   in.UnitPrice,
		AverageCost: decimal.Zero,
		Active:      true,
		CategoryID:  in.CategoryID,
		UnitID:      in.UnitID,
		ProviderID:  in.ProviderID,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID producto activo por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.active(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List productos activos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update actualiza datos del producto. No modifica stock ni costo promedio.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.active(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		p.MaxStock = in.MaxStock
	}
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		p.UnitID = *in.UnitID
	}
	if in.ProviderID != nil {
		p.ProviderID = *in.ProviderID
	}
	if err := uc.checkRefs(ctx, p.CategoryID, p.UnitID, p.ProviderID); err != nil {
		return nil, err
	}
	if p.MaxStock != nil && p.MaxStock.LessThan(p.MinStock) {
		return nil, fmt.Errorf("%w: stock_maximo menor que stock_minimo", domain.ErrInvalidInput)
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete baja lógica. El historial de entradas y salidas se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.active(ctx, id); err != nil {
		return err
	}
	return uc.repo.Deactivate(ctx, id)
}

func (uc *ProductUseCase) active(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Active {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// checkRefs valida que categoría, unidad y proveedor existan.
func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID, unitID, providerID int64) error {
	c, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("categoría %d: %w", categoryID, domain.ErrNotFound)
	}
	u, err := uc.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("unidad %d: %w", unitID, domain.ErrNotFound)
	}
	pr, err := uc.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return err
	}
	if pr == nil {
		return fmt.Errorf("proveedor %d: %w", providerID, domain.ErrNotFound)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		MaxStock:    p.MaxStock,
		UnitPrice:   p.UnitPrice,
		AverageCost: p.AverageCost,
		Active:      p.Active,
		CategoryID:  p.CategoryID,
		UnitID:      p.UnitID,
		ProviderID:  p.ProviderID,
		CreatedAt:   p.CreatedAt,
	}
}
