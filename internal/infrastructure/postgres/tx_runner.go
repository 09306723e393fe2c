package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/operaciones-api/internal/application/inventory"
	"github.com/jhoicas/operaciones-api/internal/application/workorder"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

var tracer = otel.Tracer("operaciones-api/postgres")

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ workorder.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de inventario atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	entryRepo repository.EntryRepository,
	exitRepo repository.ExitRepository,
) error) error {
	return r.inTx(ctx, "inventory", func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewEntryRepository(tx), NewExitRepository(tx))
	})
}

// RunWorkOrder igual que Run, sumando los repos de órdenes y usuarios (creación de OT).
func (r *TxRunner) RunWorkOrder(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	entryRepo repository.EntryRepository,
	exitRepo repository.ExitRepository,
	orderRepo repository.WorkOrderRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.inTx(ctx, "work_order", func(tx pgx.Tx) error {
		return fn(
			NewProductRepository(tx),
			NewEntryRepository(tx),
			NewExitRepository(tx),
			NewWorkOrderRepository(tx),
			NewUserRepository(tx),
		)
	})
}

func (r *TxRunner) inTx(ctx context.Context, name string, fn func(tx pgx.Tx) error) (err error) {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(attribute.String("tx.name", name)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
