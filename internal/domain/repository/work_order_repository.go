package repository

import (
	"context"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
)

// WorkOrderRepository puerto de persistencia para órdenes de trabajo y sus líneas.
// Las lecturas devuelven la orden con Products cargado; los usuarios los hidrata el caso de uso.
type WorkOrderRepository interface {
	Create(ctx context.Context, w *entity.WorkOrder) error
	AddProduct(ctx context.Context, p *entity.WorkOrderProduct) error
	GetByID(ctx context.Context, id int64) (*entity.WorkOrder, error)
	List(ctx context.Context, f entity.WorkOrderFilter) ([]*entity.WorkOrder, error)
	Update(ctx context.Context, w *entity.WorkOrder) error
	Deactivate(ctx context.Context, id int64) error
	Stats(ctx context.Context) (entity.WorkOrderStats, error)

	// LockNumbering serializa la numeración del año hasta el fin de la transacción.
	LockNumbering(ctx context.Context, year int) error
	// LastNumber último número emitido en el año (por id descendente), "" si ninguno.
	LastNumber(ctx context.Context, year int) (string, error)
}
