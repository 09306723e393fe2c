package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/operaciones-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"25000":     "25.000,00",
		"1234567.5": "1.234.567,50",
		"999.999":   "1.000,00",
		"-1500.25":  "-1.500,25",
		"12.3":      "12,30",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "EN PROCESO", statusLabel(entity.WorkOrderInProgress))
	assert.Equal(t, "OTRO", statusLabel("otro"))
	assert.Equal(t, "REVISIÓN", statusLabel("revisión"))
}

func TestGenerateWorkOrderPDF(t *testing.T) {
	o := &entity.WorkOrder{
		Number:       "OT-2024-001",
		OrderDate:    time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		UnitNumber:   "BUS-12",
		Description:  "Cambio de aceite y filtro",
		Status:       entity.WorkOrderPending,
		AssignedUser: &entity.User{FirstName: "Ana", LastName: "Pérez"},
		Products: []entity.WorkOrderProduct{
			{ProductName: "Aceite 15W40", Quantity: decimal.NewFromInt(4), Unit: "gal",
				UnitCost: decimal.NewFromInt(25), TotalCost: decimal.NewFromInt(100)},
		},
	}

	b, err := NewWorkOrderPDFGenerator("Transportes del Sur").GenerateWorkOrderPDF(context.Background(), o)
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateWorkOrderPDF_OrdenNil(t *testing.T) {
	_, err := NewWorkOrderPDFGenerator("").GenerateWorkOrderPDF(context.Background(), nil)
	assert.Error(t, err)
}
