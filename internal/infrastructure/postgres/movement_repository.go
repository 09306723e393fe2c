package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

var (
	_ repository.EntryRepository = (*EntryRepo)(nil)
	_ repository.ExitRepository  = (*ExitRepo)(nil)
)

// ─── Entradas ────────────────────────────────────────────────────────────────

// EntryRepo tabla entradas.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el repositorio de entradas. Pasar pool o tx.
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

const entrySelect = `
	SELECT e.id_entrada, e.id_producto, e.id_proveedor, e.cantidad, e.precio_unitario, e.total,
		COALESCE(e.numero_factura, ''), COALESCE(e.observacion, ''), e.fecha_entrada,
		COALESCE(p.nombre, ''), COALESCE(pr.nombre, '')
	FROM entradas e
	LEFT JOIN productos p ON p.id_producto = e.id_producto
	LEFT JOIN proveedores pr ON pr.id_proveedor = e.id_proveedor`

func scanEntry(row pgx.Row) (*entity.Entry, error) {
	var e entity.Entry
	err := row.Scan(&e.ID, &e.ProductID, &e.ProviderID, &e.Quantity, &e.UnitPrice, &e.Total,
		&e.InvoiceNumber, &e.Note, &e.Date, &e.ProductName, &e.ProviderName)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepo) Create(ctx context.Context, e *entity.Entry) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO entradas (id_producto, id_proveedor, cantidad, precio_unitario, total,
			numero_factura, observacion, fecha_entrada)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id_entrada`,
		e.ProductID, e.ProviderID, e.Quantity, e.UnitPrice, e.Total,
		e.InvoiceNumber, e.Note, e.Date,
	).Scan(&e.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto o proveedor: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *EntryRepo) GetByID(ctx context.Context, id int64) (*entity.Entry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, entrySelect+` WHERE e.id_entrada = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func (r *EntryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Entry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// List todas las entradas, más recientes primero.
func (r *EntryRepo) List(ctx context.Context) ([]*entity.Entry, error) {
	return r.list(ctx, entrySelect+` ORDER BY e.fecha_entrada DESC, e.id_entrada DESC`)
}

// ListByProduct entradas del producto en orden cronológico.
func (r *EntryRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Entry, error) {
	return r.list(ctx, entrySelect+` WHERE e.id_producto = $1 ORDER BY e.fecha_entrada, e.id_entrada`, productID)
}

func (r *EntryRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM entradas WHERE id_entrada = $1`, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (r *EntryRepo) SumQuantity(ctx context.Context, productID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(cantidad), 0) FROM entradas WHERE id_producto = $1`, productID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum entries: %w", err)
	}
	return sum, nil
}

// ─── Salidas ─────────────────────────────────────────────────────────────────

// ExitRepo tabla salidas.
type ExitRepo struct {
	q Querier
}

// NewExitRepository construye el repositorio de salidas. Pasar pool o tx.
func NewExitRepository(q Querier) *ExitRepo {
	return &ExitRepo{q: q}
}

const exitSelect = `
	SELECT s.id_salida, s.id_producto, s.cantidad, s.costo_unitario, s.motivo,
		COALESCE(s.referencia, ''), COALESCE(s.observacion, ''), s.fecha_salida, COALESCE(p.nombre, '')
	FROM salidas s
	LEFT JOIN productos p ON p.id_producto = s.id_producto`

func scanExit(row pgx.Row) (*entity.Exit, error) {
	var e entity.Exit
	err := row.Scan(&e.ID, &e.ProductID, &e.Quantity, &e.UnitCost, &e.Reason,
		&e.Reference, &e.Note, &e.Date, &e.ProductName)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExitRepo) Create(ctx context.Context, e *entity.Exit) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO salidas (id_producto, cantidad, costo_unitario, motivo, referencia, observacion, fecha_salida)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id_salida`,
		e.ProductID, e.Quantity, e.UnitCost, e.Reason, e.Reference, e.Note, e.Date,
	).Scan(&e.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %d: %w", e.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert exit: %w", err)
	}
	return nil
}

func (r *ExitRepo) GetByID(ctx context.Context, id int64) (*entity.Exit, error) {
	e, err := scanExit(r.q.QueryRow(ctx, exitSelect+` WHERE s.id_salida = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exit: %w", err)
	}
	return e, nil
}

// List todas las salidas, más recientes primero.
func (r *ExitRepo) List(ctx context.Context) ([]*entity.Exit, error) {
	rows, err := r.q.Query(ctx, exitSelect+` ORDER BY s.fecha_salida DESC, s.id_salida DESC`)
	if err != nil {
		return nil, fmt.Errorf("list exits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Exit
	for rows.Next() {
		e, err := scanExit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exit: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *ExitRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM salidas WHERE id_salida = $1`, id); err != nil {
		return fmt.Errorf("delete exit: %w", err)
	}
	return nil
}

func (r *ExitRepo) SumQuantity(ctx context.Context, productID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(cantidad), 0) FROM salidas WHERE id_producto = $1`, productID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum exits: %w", err)
	}
	return sum, nil
}
