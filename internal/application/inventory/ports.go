package inventory

import (
	"context"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cualquier error devuelto por fn deshace todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		entryRepo repository.EntryRepository,
		exitRepo repository.ExitRepository,
	) error) error
}

// StockExporter genera un archivo descargable con el reporte de stock.
type StockExporter interface {
	ExportStock(ctx context.Context, report *dto.StockReportResponse) ([]byte, error)
}
