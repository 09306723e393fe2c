package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
	"github.com/jhoicas/operaciones-api/internal/domain/workorder"
)

const (
	workOrdersTable     = "work_orders"
	workOrderLinesTable = "work_order_products"

	// numberingLockClass primera llave de pg_advisory_xact_lock(int, int); la segunda es el año.
	numberingLockClass = 4801
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo órdenes de trabajo y sus líneas. Las consultas se arman con squirrel y se
// escanean con pgxscan.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el repositorio. Pasar pool o tx.
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

type workOrderRow struct {
	ID             int64     `db:"id_orden"`
	Number         string    `db:"numero_orden"`
	OrderDate      time.Time `db:"fecha_orden"`
	UnitNumber     string    `db:"numero_unidad"`
	Description    string    `db:"descripcion"`
	Status         string    `db:"estado"`
	Notes          string    `db:"observaciones"`
	AssignedUserID string    `db:"id_usuario_asignado"`
	ReviewerUserID string    `db:"id_usuario_revisor"`
	Active         bool      `db:"activo"`
	CreatedAt      time.Time `db:"fecha_creacion"`
	UpdatedAt      time.Time `db:"fecha_actualizacion"`
}

func (r workOrderRow) toEntity() *entity.WorkOrder {
	return &entity.WorkOrder{
		ID:             r.ID,
		Number:         r.Number,
		OrderDate:      r.OrderDate,
		UnitNumber:     r.UnitNumber,
		Description:    r.Description,
		Status:         r.Status,
		Notes:          r.Notes,
		AssignedUserID: r.AssignedUserID,
		ReviewerUserID: r.ReviewerUserID,
		Active:         r.Active,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type workOrderLineRow struct {
	ID          int64           `db:"id"`
	WorkOrderID int64           `db:"id_orden_trabajo"`
	ProductID   int64           `db:"id_producto"`
	ProductName string          `db:"nombre_producto"`
	Quantity    decimal.Decimal `db:"cantidad"`
	Unit        string          `db:"unidad"`
	UnitCost    decimal.Decimal `db:"costo_unitario"`
	TotalCost   decimal.Decimal `db:"costo_total"`
}

type workOrderStatsRow struct {
	Total      int64 `db:"total"`
	Pending    int64 `db:"pendientes"`
	InProgress int64 `db:"en_proceso"`
	Completed  int64 `db:"completadas"`
	Cancelled  int64 `db:"canceladas"`
}

func selectWorkOrders() squirrel.SelectBuilder {
	return psql.Select(
		"id_orden", "numero_orden", "fecha_orden", "numero_unidad", "descripcion", "estado",
		"COALESCE(observaciones, '') AS observaciones",
		"id_usuario_asignado", "id_usuario_revisor", "activo", "fecha_creacion", "fecha_actualizacion",
	).From(workOrdersTable)
}

// buildListQuery órdenes activas; estado y usuario (asignado o revisor) se combinan con AND.
func buildListQuery(f entity.WorkOrderFilter) (string, []any, error) {
	q := selectWorkOrders().Where(squirrel.Eq{"activo": true})
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"estado": f.Status})
	}
	if f.UserID != "" {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"id_usuario_asignado": f.UserID},
			squirrel.Eq{"id_usuario_revisor": f.UserID},
		})
	}
	return q.OrderBy("fecha_creacion DESC", "id_orden DESC").ToSql()
}

func buildStatsQuery() (string, []any, error) {
	return psql.Select("COUNT(*) AS total").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE estado = ?) AS pendientes", entity.WorkOrderPending)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE estado = ?) AS en_proceso", entity.WorkOrderInProgress)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE estado = ?) AS completadas", entity.WorkOrderCompleted)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE estado = ?) AS canceladas", entity.WorkOrderCancelled)).
		From(workOrdersTable).
		Where(squirrel.Eq{"activo": true}).
		ToSql()
}

func buildLastNumberQuery(year int) (string, []any, error) {
	return psql.Select("numero_orden").
		From(workOrdersTable).
		Where(squirrel.Like{"numero_orden": workorder.YearPattern(year)}).
		OrderBy("id_orden DESC").
		Limit(1).
		ToSql()
}

func buildLinesQuery(orderIDs []int64) (string, []any, error) {
	return psql.Select(
		"id", "id_orden_trabajo", "id_producto", "nombre_producto",
		"cantidad", "unidad", "costo_unitario", "costo_total",
	).
		From(workOrderLinesTable).
		Where(squirrel.Eq{"id_orden_trabajo": orderIDs}).
		OrderBy("id_orden_trabajo", "id").
		ToSql()
}

// Create inserta la cabecera y asigna ID y fechas. Un número repetido devuelve ErrDuplicate.
func (r *WorkOrderRepo) Create(ctx context.Context, w *entity.WorkOrder) error {
	sql, args, err := psql.Insert(workOrdersTable).
		Columns(
			"numero_orden", "fecha_orden", "numero_unidad", "descripcion", "estado",
			"observaciones", "id_usuario_asignado", "id_usuario_revisor", "activo",
		).
		Values(
			w.Number, w.OrderDate, w.UnitNumber, w.Description, w.Status,
			w.Notes, w.AssignedUserID, w.ReviewerUserID, w.Active,
		).
		Suffix("RETURNING id_orden, fecha_creacion, fecha_actualizacion").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert work order: %w", err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número %s: %w", w.Number, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// AddProduct inserta una línea de la orden.
func (r *WorkOrderRepo) AddProduct(ctx context.Context, p *entity.WorkOrderProduct) error {
	sql, args, err := psql.Insert(workOrderLinesTable).
		Columns(
			"id_orden_trabajo", "id_producto", "nombre_producto",
			"cantidad", "unidad", "costo_unitario", "costo_total",
		).
		Values(p.WorkOrderID, p.ProductID, p.ProductName, p.Quantity, p.Unit, p.UnitCost, p.TotalCost).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert work order line: %w", err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&p.ID); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %d: %w", p.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert work order line: %w", err)
	}
	return nil
}

// GetByID orden por ID (activa o no) con sus líneas; nil, nil si no existe.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id int64) (*entity.WorkOrder, error) {
	sql, args, err := selectWorkOrders().Where(squirrel.Eq{"id_orden": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get work order: %w", err)
	}
	var row workOrderRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	orders := []*entity.WorkOrder{row.toEntity()}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders[0], nil
}

// List órdenes activas filtradas, más recientes primero, con sus líneas.
func (r *WorkOrderRepo) List(ctx context.Context, f entity.WorkOrderFilter) ([]*entity.WorkOrder, error) {
	sql, args, err := buildListQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build list work orders: %w", err)
	}
	var rows []workOrderRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	orders := make([]*entity.WorkOrder, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toEntity())
	}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachLines carga las líneas de todas las órdenes en una sola consulta.
func (r *WorkOrderRepo) attachLines(ctx context.Context, orders []*entity.WorkOrder) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.WorkOrder, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	sql, args, err := buildLinesQuery(ids)
	if err != nil {
		return fmt.Errorf("build work order lines: %w", err)
	}
	var lines []workOrderLineRow
	if err := pgxscan.Select(ctx, r.q, &lines, sql, args...); err != nil {
		return fmt.Errorf("get work order lines: %w", err)
	}
	for _, l := range lines {
		o := byID[l.WorkOrderID]
		o.Products = append(o.Products, entity.WorkOrderProduct{
			ID:          l.ID,
			WorkOrderID: l.WorkOrderID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitCost:    l.UnitCost,
			TotalCost:   l.TotalCost,
		})
	}
	return nil
}

// Update modifica la cabecera; numero_orden y las líneas no cambian.
func (r *WorkOrderRepo) Update(ctx context.Context, w *entity.WorkOrder) error {
	sql, args, err := psql.Update(workOrdersTable).
		SetMap(map[string]any{
			"fecha_orden":         w.OrderDate,
			"numero_unidad":       w.UnitNumber,
			"descripcion":         w.Description,
			"estado":              w.Status,
			"observaciones":       w.Notes,
			"id_usuario_asignado": w.AssignedUserID,
			"id_usuario_revisor":  w.ReviewerUserID,
			"fecha_actualizacion": squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id_orden": w.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update work order: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("update work order: %w", err)
	}
	return nil
}

// Deactivate baja lógica.
func (r *WorkOrderRepo) Deactivate(ctx context.Context, id int64) error {
	sql, args, err := psql.Update(workOrdersTable).
		Set("activo", false).
		Set("fecha_actualizacion", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id_orden": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build deactivate work order: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("deactivate work order: %w", err)
	}
	return nil
}

// Stats conteos por estado sobre órdenes activas en una sola consulta.
func (r *WorkOrderRepo) Stats(ctx context.Context) (entity.WorkOrderStats, error) {
	sql, args, err := buildStatsQuery()
	if err != nil {
		return entity.WorkOrderStats{}, fmt.Errorf("build work order stats: %w", err)
	}
	var row workOrderStatsRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		return entity.WorkOrderStats{}, fmt.Errorf("work order stats: %w", err)
	}
	return entity.WorkOrderStats{
		Total:      row.Total,
		Pending:    row.Pending,
		InProgress: row.InProgress,
		Completed:  row.Completed,
		Cancelled:  row.Cancelled,
	}, nil
}

// LockNumbering toma un advisory lock de transacción por año. Dos creaciones concurrentes del
// mismo año leen el último número de a una; el lock se libera con el Commit o Rollback.
func (r *WorkOrderRepo) LockNumbering(ctx context.Context, year int) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, numberingLockClass, year); err != nil {
		return fmt.Errorf("lock work order numbering: %w", err)
	}
	return nil
}

// LastNumber último número emitido en el año, incluidas órdenes dadas de baja.
func (r *WorkOrderRepo) LastNumber(ctx context.Context, year int) (string, error) {
	sql, args, err := buildLastNumberQuery(year)
	if err != nil {
		return "", fmt.Errorf("build last work order number: %w", err)
	}
	var number string
	if err := pgxscan.Get(ctx, r.q, &number, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("last work order number: %w", err)
	}
	return number, nil
}
