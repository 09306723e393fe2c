package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID()
	r.s.st.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate en memoria no bloquea filas; las transacciones ya están serializadas.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.st.products {
		if p.Active {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) ListStock(_ context.Context) ([]*entity.ProductStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProductStock
	for _, p := range r.s.st.products {
		if !p.Active {
			continue
		}
		out = append(out, &entity.ProductStock{
			Product:          p,
			CategoryName:     r.s.st.categories[p.CategoryID].Name,
			UnitAbbreviation: r.s.st.units[p.UnitID].Abbreviation,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update conserva Stock y AverageCost guardados.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.products[p.ID]
	if !ok {
		return nil
	}
	next := *p
	next.Stock = cur.Stock
	next.AverageCost = cur.AverageCost
	r.s.st.products[p.ID] = next
	return nil
}

func (r *ProductRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.st.products[id]; ok {
		p.Active = false
		r.s.st.products[id] = p
	}
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id int64, stock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("product.update_stock"); err != nil {
		return err
	}
	if p, ok := r.s.st.products[id]; ok {
		p.Stock = stock
		r.s.st.products[id] = p
	}
	return nil
}

func (r *ProductRepo) UpdateAverageCost(_ context.Context, id int64, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.st.products[id]; ok {
		p.AverageCost = cost
		r.s.st.products[id] = p
	}
	return nil
}
