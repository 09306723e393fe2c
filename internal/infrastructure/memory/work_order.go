package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
	"github.com/jhoicas/operaciones-api/internal/domain/workorder"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo órdenes de trabajo en memoria.
type WorkOrderRepo struct{ s *Store }

// WorkOrders repositorio de órdenes.
func (s *Store) WorkOrders() *WorkOrderRepo { return &WorkOrderRepo{s: s} }

func (r *WorkOrderRepo) Create(_ context.Context, w *entity.WorkOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("work_order.create"); err != nil {
		return err
	}
	for _, o := range r.s.st.orders {
		if o.Number == w.Number {
			return domain.ErrDuplicate
		}
	}
	w.ID = r.s.nextID()
	now := time.Now()
	w.CreatedAt, w.UpdatedAt = now, now
	stored := *w
	stored.Products, stored.AssignedUser, stored.ReviewerUser = nil, nil, nil
	r.s.st.orders[w.ID] = stored
	return nil
}

func (r *WorkOrderRepo) AddProduct(_ context.Context, p *entity.WorkOrderProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("work_order.add_product"); err != nil {
		return err
	}
	if _, ok := r.s.st.orders[p.WorkOrderID]; !ok {
		return domain.ErrNotFound
	}
	p.ID = r.s.nextID()
	r.s.st.lines[p.ID] = *p
	return nil
}

func (r *WorkOrderRepo) withLines(o entity.WorkOrder) *entity.WorkOrder {
	o.Products = nil
	for _, l := range r.s.st.lines {
		if l.WorkOrderID == o.ID {
			o.Products = append(o.Products, l)
		}
	}
	sort.Slice(o.Products, func(i, j int) bool { return o.Products[i].ID < o.Products[j].ID })
	return &o
}

func (r *WorkOrderRepo) GetByID(_ context.Context, id int64) (*entity.WorkOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, nil
	}
	return r.withLines(o), nil
}

func (r *WorkOrderRepo) List(_ context.Context, f entity.WorkOrderFilter) ([]*entity.WorkOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.WorkOrder
	for _, o := range r.s.st.orders {
		if !o.Active {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.UserID != "" && o.AssignedUserID != f.UserID && o.ReviewerUserID != f.UserID {
			continue
		}
		out = append(out, r.withLines(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *WorkOrderRepo) Update(_ context.Context, w *entity.WorkOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.orders[w.ID]
	if !ok {
		return nil
	}
	cur.OrderDate = w.OrderDate
	cur.UnitNumber = w.UnitNumber
	cur.Description = w.Description
	cur.Status = w.Status
	cur.Notes = w.Notes
	cur.AssignedUserID = w.AssignedUserID
	cur.ReviewerUserID = w.ReviewerUserID
	cur.UpdatedAt = time.Now()
	r.s.st.orders[w.ID] = cur
	return nil
}

func (r *WorkOrderRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.st.orders[id]; ok {
		o.Active = false
		r.s.st.orders[id] = o
	}
	return nil
}

func (r *WorkOrderRepo) Stats(_ context.Context) (entity.WorkOrderStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var st entity.WorkOrderStats
	for _, o := range r.s.st.orders {
		if !o.Active {
			continue
		}
		st.Total++
		switch o.Status {
		case entity.WorkOrderPending:
			st.Pending++
		case entity.WorkOrderInProgress:
			st.InProgress++
		case entity.WorkOrderCompleted:
			st.Completed++
		case entity.WorkOrderCancelled:
			st.Cancelled++
		}
	}
	return st, nil
}

// LockNumbering no hace nada: RunWorkOrder ya serializa las transacciones.
func (r *WorkOrderRepo) LockNumbering(_ context.Context, _ int) error { return nil }

func (r *WorkOrderRepo) LastNumber(_ context.Context, year int) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prefix := strings.TrimSuffix(workorder.YearPattern(year), "%")
	var (
		last   string
		lastID int64
	)
	for _, o := range r.s.st.orders {
		if strings.HasPrefix(o.Number, prefix) && o.ID > lastID {
			last, lastID = o.Number, o.ID
		}
	}
	return last, nil
}

// Counts cantidad de órdenes, líneas y salidas guardadas (para verificar atomicidad).
func (s *Store) Counts() (orders, lines, exits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.orders), len(s.st.lines), len(s.st.exits)
}
