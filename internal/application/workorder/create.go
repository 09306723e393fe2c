package workorder

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/application/inventory"
	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	invdomain "github.com/jhoicas/operaciones-api/internal/domain/inventory"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
	wodomain "github.com/jhoicas/operaciones-api/internal/domain/workorder"
)

// Create crea la orden de trabajo completa dentro de una transacción:
//
//  1. valida usuario asignado y revisor;
//  2. bloquea cada producto y valida stock (la cantidad pedida se acumula si el producto se repite);
//  3. asigna el número OT-<año>-NNN bajo el lock de numeración del año;
//  4. guarda la cabecera en estado pendiente;
//  5. por cada línea guarda la línea, la salida de inventario y recalcula el stock.
//
// Cualquier error deshace todo. Devuelve la orden hidratada con usuarios y líneas.
func (uc *WorkOrderUseCase) Create(ctx context.Context, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	orderDate, err := parseDate(in.OrderDate)
	if err != nil {
		return nil, err
	}
	if len(in.Products) == 0 {
		return nil, fmt.Errorf("%w: la orden debe tener al menos un producto", domain.ErrInvalidInput)
	}
	requested := map[int64]decimal.Decimal{}
	for _, l := range in.Products {
		if !l.Quantity.GreaterThan(decimal.Zero) || l.UnitCost.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: cantidad y costo de %q", domain.ErrInvalidInput, l.ProductName)
		}
		requested[l.ProductID] = requested[l.ProductID].Add(l.Quantity)
	}
	productIDs := make([]int64, 0, len(requested))
	for id := range requested {
		productIDs = append(productIDs, id)
	}
	// Orden fijo de bloqueo para no cruzarse con otra orden que pida los mismos productos.
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	order := &entity.WorkOrder{
		OrderDate:      orderDate,
		UnitNumber:     in.UnitNumber,
		Description:    in.Description,
		Status:         entity.WorkOrderPending,
		Notes:          in.Notes,
		AssignedUserID: in.AssignedUserID,
		ReviewerUserID: in.ReviewerUserID,
		Active:         true,
	}
	lowStock := map[int64]*entity.Product{}

	err = uc.txRunner.RunWorkOrder(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.EntryRepository,
		exitRepo repository.ExitRepository,
		orderRepo repository.WorkOrderRepository,
		userRepo repository.UserRepository,
	) error {
		assigned, err := userRepo.GetByID(ctx, in.AssignedUserID)
		if err != nil {
			return err
		}
		if assigned == nil {
			return fmt.Errorf("usuario asignado %s: %w", in.AssignedUserID, domain.ErrUserNotFound)
		}
		reviewer, err := userRepo.GetByID(ctx, in.ReviewerUserID)
		if err != nil {
			return err
		}
		if reviewer == nil {
			return fmt.Errorf("usuario revisor %s: %w", in.ReviewerUserID, domain.ErrUserNotFound)
		}
		order.AssignedUser, order.ReviewerUser = assigned, reviewer

		products := make(map[int64]*entity.Product, len(productIDs))
		for _, id := range productIDs {
			p, err := productRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
			}
			if p.Stock.LessThan(requested[id]) {
				return fmt.Errorf("%w: %s disponible %s, solicitado %s",
					domain.ErrInsufficientStock, p.Name, p.Stock, requested[id])
			}
			products[id] = p
		}

		year := uc.now().Year()
		if err := orderRepo.LockNumbering(ctx, year); err != nil {
			return err
		}
		last, err := orderRepo.LastNumber(ctx, year)
		if err != nil {
			return err
		}
		if order.Number, err = wodomain.NextNumber(year, last); err != nil {
			return err
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		recalc := inventory.NewRecalculator(productRepo, entryRepo, exitRepo)
		for _, l := range in.Products {
			line := entity.WorkOrderProduct{
				WorkOrderID: order.ID,
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
				Unit:        l.Unit,
				UnitCost:    l.UnitCost,
				TotalCost:   invdomain.LineTotal(l.Quantity, l.UnitCost),
			}
			if err := orderRepo.AddProduct(ctx, &line); err != nil {
				return err
			}
			exit := &entity.Exit{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitCost:  l.UnitCost,
				Reason:    entity.ExitReasonWorkOrder,
				Reference: order.Number,
				Note:      entity.ExitNotePrefixWorkOrder + in.Description,
				Date:      uc.now(),
			}
			if err := exitRepo.Create(ctx, exit); err != nil {
				return err
			}
			stock, err := recalc.RecalculateStock(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if p := products[l.ProductID]; stock.LessThanOrEqual(p.MinStock) {
				p.Stock = stock
				lowStock[p.ID] = p
			}
			order.Products = append(order.Products, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("orden", order.ID).
		Str("numero", order.Number).
		Int("lineas", len(order.Products)).
		Str("total", order.Total().String()).
		Msg("orden de trabajo creada")
	for _, p := range lowStock {
		uc.log.Warn().
			Int64("producto", p.ID).
			Str("nombre", p.Name).
			Str("stock", p.Stock.String()).
			Str("stock_minimo", p.MinStock.String()).
			Str("orden", order.Number).
			Msg("stock bajo")
	}
	return toWorkOrderResponse(order), nil
}
