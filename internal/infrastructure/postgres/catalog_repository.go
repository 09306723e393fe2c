package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
	_ repository.ProviderRepository = (*ProviderRepo)(nil)
)

// ─── Categorías ──────────────────────────────────────────────────────────────

// CategoryRepo tabla categorias.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el repositorio de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO categorias (nombre, descripcion, codigo_prefijo, estado)
		VALUES ($1, $2, $3, $4) RETURNING id_categoria`,
		c.Name, c.Description, c.CodePrefix, c.Active,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `
		SELECT id_categoria, nombre, COALESCE(descripcion, ''), codigo_prefijo, estado
		FROM categorias WHERE id_categoria = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CodePrefix, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) ListActive(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id_categoria, nombre, COALESCE(descripcion, ''), codigo_prefijo, estado
		FROM categorias WHERE estado = TRUE ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CodePrefix, &c.Active); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		UPDATE categorias SET nombre = $2, descripcion = $3, codigo_prefijo = $4
		WHERE id_categoria = $1`,
		c.ID, c.Name, c.Description, c.CodePrefix,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Deactivate(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE categorias SET estado = FALSE WHERE id_categoria = $1`, id); err != nil {
		return fmt.Errorf("deactivate category: %w", err)
	}
	return nil
}

// ─── Unidades ────────────────────────────────────────────────────────────────

// UnitRepo tabla unidades.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el repositorio de unidades.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO unidades (nombre, abreviatura, descripcion, estado)
		VALUES ($1, $2, $3, $4) RETURNING id_unidad`,
		u.Name, u.Abbreviation, u.Description, u.Active,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id int64) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(ctx, `
		SELECT id_unidad, nombre, abreviatura, COALESCE(descripcion, ''), estado
		FROM unidades WHERE id_unidad = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Abbreviation, &u.Description, &u.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

func (r *UnitRepo) ListActive(ctx context.Context) ([]*entity.Unit, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id_unidad, nombre, abreviatura, COALESCE(descripcion, ''), estado
		FROM unidades WHERE estado = TRUE ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Abbreviation, &u.Description, &u.Active); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	_, err := r.q.Exec(ctx, `
		UPDATE unidades SET nombre = $2, abreviatura = $3, descripcion = $4
		WHERE id_unidad = $1`,
		u.ID, u.Name, u.Abbreviation, u.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) Deactivate(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE unidades SET estado = FALSE WHERE id_unidad = $1`, id); err != nil {
		return fmt.Errorf("deactivate unit: %w", err)
	}
	return nil
}

// ─── Proveedores ─────────────────────────────────────────────────────────────

// ProviderRepo tabla proveedores.
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el repositorio de proveedores.
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

const providerColumns = `id_proveedor, nombre, ruc, COALESCE(telefono, ''), COALESCE(email, ''), COALESCE(direccion, ''), estado`

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	var p entity.Provider
	if err := row.Scan(&p.ID, &p.Name, &p.RUC, &p.Phone, &p.Email, &p.Address, &p.Active); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO proveedores (nombre, ruc, telefono, email, direccion, estado)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id_proveedor`,
		p.Name, p.RUC, p.Phone, p.Email, p.Address, p.Active,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id int64) (*entity.Provider, error) {
	p, err := scanProvider(r.q.QueryRow(ctx,
		`SELECT `+providerColumns+` FROM proveedores WHERE id_proveedor = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}

func (r *ProviderRepo) ListActive(ctx context.Context) ([]*entity.Provider, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+providerColumns+` FROM proveedores WHERE estado = TRUE ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProviderRepo) Update(ctx context.Context, p *entity.Provider) error {
	_, err := r.q.Exec(ctx, `
		UPDATE proveedores SET nombre = $2, ruc = $3, telefono = $4, email = $5, direccion = $6
		WHERE id_proveedor = $1`,
		p.ID, p.Name, p.RUC, p.Phone, p.Email, p.Address,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update provider: %w", err)
	}
	return nil
}

func (r *ProviderRepo) Deactivate(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `UPDATE proveedores SET estado = FALSE WHERE id_proveedor = $1`, id); err != nil {
		return fmt.Errorf("deactivate provider: %w", err)
	}
	return nil
}
