// Package memory implementa los puertos de repositorio y los TxRunner en memoria.
// Se usa en los tests de casos de uso; el rollback restaura una copia del estado tomada al
// iniciar la transacción.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/operaciones-api/internal/application/inventory"
	"github.com/jhoicas/operaciones-api/internal/application/workorder"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ workorder.TxRunner = (*Store)(nil)
)

type state struct {
	categories map[int64]entity.Category
	units      map[int64]entity.Unit
	providers  map[int64]entity.Provider
	products   map[int64]entity.Product
	entries    map[int64]entity.Entry
	exits      map[int64]entity.Exit
	users      map[string]entity.User
	orders     map[int64]entity.WorkOrder
	lines      map[int64]entity.WorkOrderProduct
	posts      map[int64]entity.Post
	images     map[string]imageRow
	seq        int64
}

func newState() state {
	return state{
		categories: map[int64]entity.Category{},
		units:      map[int64]entity.Unit{},
		providers:  map[int64]entity.Provider{},
		products:   map[int64]entity.Product{},
		entries:    map[int64]entity.Entry{},
		exits:      map[int64]entity.Exit{},
		users:      map[string]entity.User{},
		orders:     map[int64]entity.WorkOrder{},
		lines:      map[int64]entity.WorkOrderProduct{},
		posts:      map[int64]entity.Post{},
		images:     map[string]imageRow{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.units {
		c.units[k] = v
	}
	for k, v := range s.providers {
		c.providers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	for k, v := range s.exits {
		c.exits[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.lines {
		c.lines[k] = v
	}
	for k, v := range s.posts {
		v.ImageURLs = append([]string(nil), v.ImageURLs...)
		c.posts[k] = v
	}
	for k, v := range s.images {
		c.images[k] = v
	}
	c.seq = s.seq
	return c
}

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	txMu   sync.Mutex // serializa transacciones
	mu     sync.Mutex
	st     state
	faults map[string]error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), faults: map[string]error{}}
}

// FailOn hace que la operación op ("exit.create", "work_order.add_product", ...) devuelva err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	return s.faults[op]
}

func (s *Store) nextID() int64 {
	s.st.seq++
	return s.st.seq
}

func (s *Store) begin() state {
	s.txMu.Lock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.clone()
}

func (s *Store) finish(snapshot state, err error) error {
	defer s.txMu.Unlock()
	if err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
	}
	return err
}

// Run ejecuta fn con los repos de inventario; si fn falla el estado vuelve al snapshot.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	entryRepo repository.EntryRepository,
	exitRepo repository.ExitRepository,
) error) error {
	snap := s.begin()
	return s.finish(snap, fn(s.Products(), s.Entries(), s.Exits()))
}

// RunWorkOrder igual que Run con los repos de órdenes y usuarios.
func (s *Store) RunWorkOrder(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	entryRepo repository.EntryRepository,
	exitRepo repository.ExitRepository,
	orderRepo repository.WorkOrderRepository,
	userRepo repository.UserRepository,
) error) error {
	snap := s.begin()
	return s.finish(snap, fn(s.Products(), s.Entries(), s.Exits(), s.WorkOrders(), s.Users()))
}
