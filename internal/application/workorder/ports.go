package workorder

import (
	"context"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

// TxRunner ejecuta la creación de una orden en una sola transacción: cabecera, líneas,
// salidas y stock se confirman juntos o no se confirma nada.
type TxRunner interface {
	RunWorkOrder(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		entryRepo repository.EntryRepository,
		exitRepo repository.ExitRepository,
		orderRepo repository.WorkOrderRepository,
		userRepo repository.UserRepository,
	) error) error
}

// PDFGenerator genera la hoja imprimible de una orden hidratada.
type PDFGenerator interface {
	GenerateWorkOrderPDF(ctx context.Context, order *entity.WorkOrder) ([]byte, error)
}
