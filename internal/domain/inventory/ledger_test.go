package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entry(qty, price string) *entity.Entry {
	return &entity.Entry{Quantity: d(qty), UnitPrice: d(price)}
}

func TestAverageCost_PonderaPorCantidad(t *testing.T) {
	got := inventory.AverageCost([]*entity.Entry{entry("10", "5"), entry("10", "7")})
	assert.True(t, got.Equal(d("6")), "esperado 6, obtenido %s", got)

	got = inventory.AverageCost([]*entity.Entry{entry("30", "2"), entry("10", "6")})
	assert.True(t, got.Equal(d("3")), "esperado 3, obtenido %s", got)
}

func TestAverageCost_SinEntradasEsCero(t *testing.T) {
	assert.True(t, inventory.AverageCost(nil).IsZero())
	assert.True(t, inventory.AverageCost([]*entity.Entry{}).IsZero())
}

func TestAverageCost_Idempotente(t *testing.T) {
	entries := []*entity.Entry{entry("3", "1.10"), entry("7", "2.35")}
	first := inventory.AverageCost(entries)
	second := inventory.AverageCost(entries)
	assert.True(t, first.Equal(second))
}

func TestCurrentStock(t *testing.T) {
	assert.True(t, inventory.CurrentStock(d("20"), d("5")).Equal(d("15")))
	assert.True(t, inventory.CurrentStock(d("0"), d("0")).IsZero())
	assert.True(t, inventory.CurrentStock(d("0"), d("4")).Equal(d("-4")))
}

func TestStockAlert(t *testing.T) {
	assert.Equal(t, inventory.AlertLow, inventory.StockAlert(d("5"), d("5")))
	assert.Equal(t, inventory.AlertLow, inventory.StockAlert(d("2"), d("5")))
	assert.Equal(t, inventory.AlertOK, inventory.StockAlert(d("5.01"), d("5")))
}

func TestLineTotal(t *testing.T) {
	assert.True(t, inventory.LineTotal(d("2.5"), d("4")).Equal(d("10")))
}
