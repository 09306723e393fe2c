package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	invdomain "github.com/jhoicas/operaciones-api/internal/domain/inventory"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
	"github.com/jhoicas/operaciones-api/pkg/logger"
)

// LedgerUseCase registra entradas y salidas de inventario. Cada mutación corre en una transacción
// con la fila del producto bloqueada (SELECT FOR UPDATE) y recalcula los valores derivados
// antes del Commit.
type LedgerUseCase struct {
	txRunner     TxRunner
	providerRepo repository.ProviderRepository
	entryRepo    repository.EntryRepository
	exitRepo     repository.ExitRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	providerRepo repository.ProviderRepository,
	entryRepo repository.EntryRepository,
	exitRepo repository.ExitRepository,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		providerRepo: providerRepo,
		entryRepo:    entryRepo,
		exitRepo:     exitRepo,
		log:          log.Component("inventory"),
		now:          time.Now,
	}
}

// ─── Entradas ────────────────────────────────────────────────────────────────

// CreateEntry registra una compra: total = cantidad × precio; luego recalcula stock y costo promedio.
func (uc *LedgerUseCase) CreateEntry(ctx context.Context, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	entry := &entity.Entry{
		ProductID:     in.ProductID,
		ProviderID:    in.ProviderID,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		Total:         invdomain.LineTotal(in.Quantity, in.UnitPrice),
		InvoiceNumber: in.InvoiceNumber,
		Note:          in.Note,
		Date:          uc.now(),
	}
	var stock, cost decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.EntryRepository,
		exitRepo repository.ExitRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %d: %w", in.ProductID, domain.ErrNotFound)
		}
		provider, err := uc.providerRepo.GetByID(ctx, in.ProviderID)
		if err != nil {
			return err
		}
		if provider == nil {
			return fmt.Errorf("proveedor %d: %w", in.ProviderID, domain.ErrNotFound)
		}
		entry.ProductName = product.Name
		entry.ProviderName = provider.Name
		if err := entryRepo.Create(ctx, entry); err != nil {
			return err
		}
		recalc := NewRecalculator(productRepo, entryRepo, exitRepo)
		if stock, err = recalc.RecalculateStock(ctx, in.ProductID); err != nil {
			return err
		}
		cost, err = recalc.RecalculateAverageCost(ctx, in.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("entrada", entry.ID).
		Int64("producto", entry.ProductID).
		Str("cantidad", entry.Quantity.String()).
		Str("stock", stock.String()).
		Str("costo_promedio", cost.String()).
		Msg("entrada registrada")
	return toEntryResponse(entry), nil
}

// GetEntry obtiene una entrada por ID.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, id int64) (*dto.EntryResponse, error) {
	e, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEntryResponse(e), nil
}

// ListEntries lista las entradas, más recientes primero.
func (uc *LedgerUseCase) ListEntries(ctx context.Context) ([]dto.EntryResponse, error) {
	list, err := uc.entryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEntryResponse(e))
	}
	return out, nil
}

// DeleteEntry elimina la entrada y recalcula stock y costo promedio del producto.
// Si la entrada ya fue consumida por salidas el stock queda negativo.
func (uc *LedgerUseCase) DeleteEntry(ctx context.Context, id int64) error {
	var productID int64
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.EntryRepository,
		exitRepo repository.ExitRepository,
	) error {
		entry, err := entryRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		productID = entry.ProductID
		if _, err := productRepo.GetForUpdate(ctx, productID); err != nil {
			return err
		}
		if err := entryRepo.Delete(ctx, id); err != nil {
			return err
		}
		return NewRecalculator(productRepo, entryRepo, exitRepo).RecalculateAll(ctx, productID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("entrada", id).Int64("producto", productID).Msg("entrada eliminada")
	return nil
}

// ─── Salidas ─────────────────────────────────────────────────────────────────

// CreateExit registra una salida al costo promedio vigente. Falla con ErrInsufficientStock si
// stock_actual < cantidad. Si el stock resultante queda en o bajo el mínimo se emite una alerta.
func (uc *LedgerUseCase) CreateExit(ctx context.Context, in dto.CreateExitRequest) (*dto.ExitResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	exit := &entity.Exit{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		Note:      in.Note,
		Date:      uc.now(),
	}
	var (
		stock    decimal.Decimal
		minStock decimal.Decimal
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.EntryRepository,
		exitRepo repository.ExitRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %d: %w", in.ProductID, domain.ErrNotFound)
		}
		if product.Stock.LessThan(in.Quantity) {
			return fmt.Errorf("%w: disponible %s, solicitado %s", domain.ErrInsufficientStock, product.Stock, in.Quantity)
		}
		exit.UnitCost = product.AverageCost
		exit.ProductName = product.Name
		minStock = product.MinStock
		if err := exitRepo.Create(ctx, exit); err != nil {
			return err
		}
		stock, err = NewRecalculator(productRepo, entryRepo, exitRepo).RecalculateStock(ctx, in.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("salida", exit.ID).
		Int64("producto", exit.ProductID).
		Str("cantidad", exit.Quantity.String()).
		Str("stock", stock.String()).
		Msg("salida registrada")
	if stock.LessThanOrEqual(minStock) {
		uc.log.Warn().
			Int64("producto", exit.ProductID).
			Str("nombre", exit.ProductName).
			Str("stock", stock.String()).
			Str("stock_minimo", minStock.String()).
			Msg("stock bajo")
	}
	return toExitResponse(exit), nil
}

// GetExit obtiene una salida por ID.
func (uc *LedgerUseCase) GetExit(ctx context.Context, id int64) (*dto.ExitResponse, error) {
	e, err := uc.exitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toExitResponse(e), nil
}

// ListExits lista las salidas, más recientes primero.
func (uc *LedgerUseCase) ListExits(ctx context.Context) ([]dto.ExitResponse, error) {
	list, err := uc.exitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExitResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toExitResponse(e))
	}
	return out, nil
}

// DeleteExit elimina la salida y recalcula el stock. El costo promedio no cambia.
func (uc *LedgerUseCase) DeleteExit(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.EntryRepository,
		exitRepo repository.ExitRepository,
	) error {
		exit, err := exitRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if exit == nil {
			return domain.ErrNotFound
		}
		if _, err := productRepo.GetForUpdate(ctx, exit.ProductID); err != nil {
			return err
		}
		if err := exitRepo.Delete(ctx, id); err != nil {
			return err
		}
		_, err = NewRecalculator(productRepo, entryRepo, exitRepo).RecalculateStock(ctx, exit.ProductID)
		return err
	})
}

func toEntryResponse(e *entity.Entry) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:            e.ID,
		ProductID:     e.ProductID,
		ProductName:   e.ProductName,
		ProviderID:    e.ProviderID,
		ProviderName:  e.ProviderName,
		Quantity:      e.Quantity,
		UnitPrice:     e.UnitPrice,
		Total:         e.Total,
		InvoiceNumber: e.InvoiceNumber,
		Note:          e.Note,
		Date:          e.Date,
	}
}

func toExitResponse(e *entity.Exit) *dto.ExitResponse {
	return &dto.ExitResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		Quantity:    e.Quantity,
		UnitCost:    e.UnitCost,
		Reason:      e.Reason,
		Reference:   e.Reference,
		Note:        e.Note,
		Date:        e.Date,
	}
}
