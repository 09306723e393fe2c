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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id_producto, p.nombre, COALESCE(p.descripcion, ''), p.stock_actual, p.stock_minimo,
	p.stock_maximo, p.precio_unitario, p.costo_promedio, p.estado, p.id_categoria, p.id_unidad,
	p.id_proveedor, p.fecha_creacion`

func productDest(p *entity.Product) []any {
	return []any{
		&p.ID, &p.Name, &p.Description, &p.Stock, &p.MinStock,
		&p.MaxStock, &p.UnitPrice, &p.AverageCost, &p.Active, &p.CategoryID, &p.UnitID,
		&p.ProviderID, &p.CreatedAt,
	}
}

// Create persiste un nuevo producto. Stock y costo promedio inician en 0.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO productos (nombre, descripcion, stock_actual, stock_minimo, stock_maximo,
			precio_unitario, costo_promedio, estado, id_categoria, id_unidad, id_proveedor)
		VALUES ($1, $2, 0, $3, $4, $5, 0, $6, $7, $8, $9)
		RETURNING id_producto, fecha_creacion`,
		p.Name, p.Description, p.MinStock, p.MaxStock,
		p.UnitPrice, p.Active, p.CategoryID, p.UnitID, p.ProviderID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("categoría, unidad o proveedor: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	p.Stock, p.AverageCost = decimal.Zero, decimal.Zero
	return nil
}

func (r *ProductRepo) get(ctx context.Context, query string, id int64) (*entity.Product, error) {
	var p entity.Product
	if err := r.q.QueryRow(ctx, query, id).Scan(productDest(&p)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM productos p WHERE p.id_producto = $1`, id)
}

// GetForUpdate igual que GetByID bloqueando la fila hasta el fin de la transacción.
// Fuera de una transacción el bloqueo se libera al terminar la sentencia.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM productos p WHERE p.id_producto = $1 FOR UPDATE`, id)
}

// ListActive productos activos por nombre.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM productos p WHERE p.estado = TRUE ORDER BY p.nombre`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(productDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListStock productos activos con nombre de categoría y abreviatura de unidad.
func (r *ProductRepo) ListStock(ctx context.Context) ([]*entity.ProductStock, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+`, COALESCE(c.nombre, ''), COALESCE(u.abreviatura, '')
		FROM productos p
		LEFT JOIN categorias c ON c.id_categoria = p.id_categoria
		LEFT JOIN unidades u ON u.id_unidad = p.id_unidad
		WHERE p.estado = TRUE
		ORDER BY p.nombre`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductStock
	for rows.Next() {
		var ps entity.ProductStock
		dest := append(productDest(&ps.Product), &ps.CategoryName, &ps.UnitAbbreviation)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &ps)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables. No toca stock_actual ni costo_promedio (derivados del libro).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE productos SET nombre = $2, descripcion = $3, stock_minimo = $4, stock_maximo = $5,
			precio_unitario = $6, id_categoria = $7, id_unidad = $8, id_proveedor = $9
		WHERE id_producto = $1`,
		p.ID, p.Name, p.Description, p.MinStock, p.MaxStock,
		p.UnitPrice, p.CategoryID, p.UnitID, p.ProviderID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("categoría, unidad o proveedor: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Deactivate baja lógica.
func (r *ProductRepo) Deactivate(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE productos SET estado = FALSE WHERE id_producto = $1`, id); err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

// UpdateStock guarda el stock recalculado (usado por el recalculador de inventario).
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, stock decimal.Decimal) error {
	if _, err := r.q.Exec(ctx, `UPDATE productos SET stock_actual = $2 WHERE id_producto = $1`, id, stock); err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// UpdateAverageCost guarda el costo promedio recalculado.
func (r *ProductRepo) UpdateAverageCost(ctx context.Context, id int64, cost decimal.Decimal) error {
	if _, err := r.q.Exec(ctx, `UPDATE productos SET costo_promedio = $2 WHERE id_producto = $1`, id, cost); err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}
