package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	invdomain "github.com/jhoicas/operaciones-api/internal/domain/inventory"
	"github.com/jhoicas/operaciones-api/internal/domain/repository"
)

// Recalculator deriva stock_actual y costo_promedio de un producto desde el libro de
// entradas y salidas y los guarda en el producto. Siempre recalcula completo; no hay deltas.
// Dentro de una transacción se construye con los repos atados a la tx.
type Recalculator struct {
	products repository.ProductRepository
	entries  repository.EntryRepository
	exits    repository.ExitRepository
}

// NewRecalculator construye el recalculador.
func NewRecalculator(products repository.ProductRepository, entries repository.EntryRepository, exits repository.ExitRepository) *Recalculator {
	return &Recalculator{products: products, entries: entries, exits: exits}
}

// RecalculateStock stock_actual = Σ entradas − Σ salidas. Un id inexistente no actualiza filas.
func (r *Recalculator) RecalculateStock(ctx context.Context, productID int64) (decimal.Decimal, error) {
	in, err := r.entries.SumQuantity(ctx, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar entradas: %w", err)
	}
	out, err := r.exits.SumQuantity(ctx, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar salidas: %w", err)
	}
	stock := invdomain.CurrentStock(in, out)
	if err := r.products.UpdateStock(ctx, productID, stock); err != nil {
		return decimal.Zero, err
	}
	return stock, nil
}

// RecalculateAverageCost costo promedio ponderado sobre todas las entradas del producto.
func (r *Recalculator) RecalculateAverageCost(ctx context.Context, productID int64) (decimal.Decimal, error) {
	entries, err := r.entries.ListByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listar entradas: %w", err)
	}
	cost := invdomain.AverageCost(entries)
	if err := r.products.UpdateAverageCost(ctx, productID, cost); err != nil {
		return decimal.Zero, err
	}
	return cost, nil
}

// RecalculateAll recalcula stock y costo promedio (mutaciones de entradas).
func (r *Recalculator) RecalculateAll(ctx context.Context, productID int64) error {
	if _, err := r.RecalculateStock(ctx, productID); err != nil {
		return err
	}
	_, err := r.RecalculateAverageCost(ctx, productID)
	return err
}
