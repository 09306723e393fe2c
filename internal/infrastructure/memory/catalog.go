package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
	_ repository.ProviderRepository = (*ProviderRepo)(nil)
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ s *Store }

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.nextID()
	r.s.st.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) ListActive(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.s.st.categories {
		if c.Active {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.categories[c.ID]; ok {
		r.s.st.categories[c.ID] = *c
	}
	return nil
}

func (r *CategoryRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.st.categories[id]; ok {
		c.Active = false
		r.s.st.categories[id] = c
	}
	return nil
}

// UnitRepo unidades en memoria.
type UnitRepo struct{ s *Store }

// Units repositorio de unidades.
func (s *Store) Units() *UnitRepo { return &UnitRepo{s: s} }

func (r *UnitRepo) Create(_ context.Context, u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.ID = r.s.nextID()
	r.s.st.units[u.ID] = *u
	return nil
}

func (r *UnitRepo) GetByID(_ context.Context, id int64) (*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UnitRepo) ListActive(_ context.Context) ([]*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Unit
	for _, u := range r.s.st.units {
		if u.Active {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UnitRepo) Update(_ context.Context, u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.units[u.ID]; ok {
		r.s.st.units[u.ID] = *u
	}
	return nil
}

func (r *UnitRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.st.units[id]; ok {
		u.Active = false
		r.s.st.units[id] = u
	}
	return nil
}

// ProviderRepo proveedores en memoria.
type ProviderRepo struct{ s *Store }

// Providers repositorio de proveedores.
func (s *Store) Providers() *ProviderRepo { return &ProviderRepo{s: s} }

func (r *ProviderRepo) Create(_ context.Context, p *entity.Provider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID()
	r.s.st.providers[p.ID] = *p
	return nil
}

func (r *ProviderRepo) GetByID(_ context.Context, id int64) (*entity.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.providers[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProviderRepo) ListActive(_ context.Context) ([]*entity.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Provider
	for _, p := range r.s.st.providers {
		if p.Active {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProviderRepo) Update(_ context.Context, p *entity.Provider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.providers[p.ID]; ok {
		r.s.st.providers[p.ID] = *p
	}
	return nil
}

func (r *ProviderRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.st.providers[id]; ok {
		p.Active = false
		r.s.st.providers[id] = p
	}
	return nil
}
