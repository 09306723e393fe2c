package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

var (
	_ repository.EntryRepository = (*EntryRepo)(nil)
	_ repository.ExitRepository  = (*ExitRepo)(nil)
)

// EntryRepo libro de entradas en memoria.
type EntryRepo struct{ s *Store }

// Entries repositorio de entradas.
func (s *Store) Entries() *EntryRepo { return &EntryRepo{s: s} }

func (r *EntryRepo) Create(_ context.Context, e *entity.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("entry.create"); err != nil {
		return err
	}
	e.ID = r.s.nextID()
	r.s.st.entries[e.ID] = *e
	return nil
}

func (r *EntryRepo) GetByID(_ context.Context, id int64) (*entity.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.st.entries[id]
	if !ok {
		return nil, nil
	}
	r.fillNames(&e)
	return &e, nil
}

func (r *EntryRepo) fillNames(e *entity.Entry) {
	e.ProductName = r.s.st.products[e.ProductID].Name
	e.ProviderName = r.s.st.providers[e.ProviderID].Name
}

func (r *EntryRepo) List(_ context.Context) ([]*entity.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Entry, 0, len(r.s.st.entries))
	for _, e := range r.s.st.entries {
		e := e
		r.fillNames(&e)
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID > out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *EntryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.entries, id)
	return nil
}

func (r *EntryRepo) SumQuantity(_ context.Context, productID int64) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, e := range r.s.st.entries {
		if e.ProductID == productID {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum, nil
}

func (r *EntryRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Entry
	for _, e := range r.s.st.entries {
		if e.ProductID == productID {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// ExitRepo libro de salidas en memoria.
type ExitRepo struct{ s *Store }

// Exits repositorio de salidas.
func (s *Store) Exits() *ExitRepo { return &ExitRepo{s: s} }

func (r *ExitRepo) Create(_ context.Context, e *entity.Exit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("exit.create"); err != nil {
		return err
	}
	e.ID = r.s.nextID()
	r.s.st.exits[e.ID] = *e
	return nil
}

func (r *ExitRepo) GetByID(_ context.Context, id int64) (*entity.Exit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.st.exits[id]
	if !ok {
		return nil, nil
	}
	e.ProductName = r.s.st.products[e.ProductID].Name
	return &e, nil
}

func (r *ExitRepo) List(_ context.Context) ([]*entity.Exit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Exit, 0, len(r.s.st.exits))
	for _, e := range r.s.st.exits {
		e := e
		e.ProductName = r.s.st.products[e.ProductID].Name
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID > out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *ExitRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.exits, id)
	return nil
}

func (r *ExitRepo) SumQuantity(_ context.Context, productID int64) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, e := range r.s.st.exits {
		if e.ProductID == productID {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum, nil
}

// ExitsByReference salidas cuya referencia coincide (p. ej. número de OT).
func (s *Store) ExitsByReference(ref string) []entity.Exit {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Exit
	for _, e := range s.st.exits {
		if e.Reference == ref {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
