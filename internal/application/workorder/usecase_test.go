package workorder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/application/workorder"
	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/infrastructure/memory"
	"github.com/jhoicas/operaciones-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakePDF struct{ got *entity.WorkOrder }

func (f *fakePDF) GenerateWorkOrderPDF(_ context.Context, o *entity.WorkOrder) ([]byte, error) {
	f.got = o
	return []byte("%PDF-1.4"), nil
}

type fixture struct {
	store   *memory.Store
	uc      *workorder.WorkOrderUseCase
	pdf     *fakePDF
	tecnico *entity.User
	revisor *entity.User
	aceite  *entity.Product
	filtro  *entity.Product
	clock   time.Time
}

// newFixture: dos usuarios; aceite con stock 10 al costo 4, filtro con stock 3 al costo 12.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	f := &fixture{store: s, pdf: &fakePDF{}, clock: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}

	f.tecnico = &entity.User{ID: uuid.NewString(), FirstName: "Ana", LastName: "Pérez", Email: "ana@taller.com", Role: entity.RoleTecnico, Active: true}
	f.revisor = &entity.User{ID: uuid.NewString(), FirstName: "Luis", LastName: "Mora", Email: "luis@taller.com", Role: entity.RoleSupervisor, Active: true}
	require.NoError(t, s.Users().Create(ctx, f.tecnico))
	require.NoError(t, s.Users().Create(ctx, f.revisor))

	prov := &entity.Provider{Name: "Lubricantes SA", Active: true}
	require.NoError(t, s.Providers().Create(ctx, prov))
	f.aceite = &entity.Product{Name: "Aceite 15W40", MinStock: d("2"), Active: true}
	f.filtro = &entity.Product{Name: "Filtro", MinStock: d("1"), Active: true}
	require.NoError(t, s.Products().Create(ctx, f.aceite))
	require.NoError(t, s.Products().Create(ctx, f.filtro))
	for _, e := range []*entity.Entry{
		{ProductID: f.aceite.ID, ProviderID: prov.ID, Quantity: d("10"), UnitPrice: d("4")},
		{ProductID: f.filtro.ID, ProviderID: prov.ID, Quantity: d("3"), UnitPrice: d("12")},
	} {
		require.NoError(t, s.Entries().Create(ctx, e))
	}
	require.NoError(t, s.Products().UpdateStock(ctx, f.aceite.ID, d("10")))
	require.NoError(t, s.Products().UpdateStock(ctx, f.filtro.ID, d("3")))

	f.uc = workorder.NewWorkOrderUseCase(s, s.WorkOrders(), s.Users(), f.pdf, logger.Nop()).
		WithClock(func() time.Time { return f.clock })
	return f
}

func (f *fixture) request(lines ...dto.WorkOrderLineRequest) dto.CreateWorkOrderRequest {
	return dto.CreateWorkOrderRequest{
		OrderDate:      "2024-05-10",
		UnitNumber:     "BUS-12",
		Description:    "Cambio de aceite",
		AssignedUserID: f.tecnico.ID,
		ReviewerUserID: f.revisor.ID,
		Products:       lines,
	}
}

func (f *fixture) line(p *entity.Product, qty, cost string) dto.WorkOrderLineRequest {
	return dto.WorkOrderLineRequest{ProductID: p.ID, ProductName: p.Name, Quantity: d(qty), Unit: "u", UnitCost: d(cost)}
}

func (f *fixture) stock(t *testing.T, p *entity.Product) decimal.Decimal {
	t.Helper()
	got, err := f.store.Products().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	return got.Stock
}

func (f *fixture) create(t *testing.T) *dto.WorkOrderResponse {
	t.Helper()
	o, err := f.uc.Create(context.Background(), f.request(f.line(f.aceite, "1", "4")))
	require.NoError(t, err)
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OrdenCompleta(t *testing.T) {
	f := newFixture(t)

	o, err := f.uc.Create(context.Background(), f.request(
		f.line(f.aceite, "4", "4"),
		f.line(f.filtro, "1", "12"),
	))
	require.NoError(t, err)

	assert.Equal(t, "OT-2024-001", o.Number)
	assert.Equal(t, entity.WorkOrderPending, o.Status)
	require.Len(t, o.Products, 2)
	assert.True(t, o.Products[0].TotalCost.Equal(d("16")))
	assert.True(t, o.Products[1].TotalCost.Equal(d("12")))
	assert.True(t, o.Total.Equal(d("28")))
	require.NotNil(t, o.AssignedUser)
	assert.Equal(t, "Ana", o.AssignedUser.FirstName)
	require.NotNil(t, o.ReviewerUser)
	assert.Equal(t, entity.RoleSupervisor, o.ReviewerUser.Role)

	assert.True(t, f.stock(t, f.aceite).Equal(d("6")))
	assert.True(t, f.stock(t, f.filtro).Equal(d("2")))

	exits := f.store.ExitsByReference("OT-2024-001")
	require.Len(t, exits, 2)
	for _, x := range exits {
		assert.Equal(t, entity.ExitReasonWorkOrder, x.Reason)
		assert.Equal(t, "OT: Cambio de aceite", x.Note)
		assert.Equal(t, f.clock, x.Date)
	}
}

func TestCreate_NumeracionConsecutivaPorAño(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "OT-2024-001", f.create(t).Number)
	assert.Equal(t, "OT-2024-002", f.create(t).Number)

	f.clock = time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "OT-2025-001", f.create(t).Number, "cada año reinicia el consecutivo")
}

func TestCreate_StockInsuficienteNoEscribeNada(t *testing.T) {
	f := newFixture(t)
	orders, lines, exits := f.store.Counts()

	_, err := f.uc.Create(context.Background(), f.request(
		f.line(f.aceite, "2", "4"),
		f.line(f.filtro, "5", "12"),
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	o2, l2, x2 := f.store.Counts()
	assert.Equal(t, orders, o2)
	assert.Equal(t, lines, l2)
	assert.Equal(t, exits, x2)
	assert.True(t, f.stock(t, f.aceite).Equal(d("10")))
}

func TestCreate_ProductoRepetidoSeAcumula(t *testing.T) {
	f := newFixture(t)

	// 2 + 2 supera el stock de 3 aunque cada línea por separado alcance.
	_, err := f.uc.Create(context.Background(), f.request(
		f.line(f.filtro, "2", "12"),
		f.line(f.filtro, "2", "12"),
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	o, err := f.uc.Create(context.Background(), f.request(
		f.line(f.aceite, "3", "4"),
		f.line(f.aceite, "3", "4"),
	))
	require.NoError(t, err)
	assert.Len(t, o.Products, 2)
	assert.True(t, f.stock(t, f.aceite).Equal(d("4")))
}

func TestCreate_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	req := f.request(f.line(f.aceite, "1", "4"))
	req.ReviewerUserID = uuid.NewString()

	_, err := f.uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	orders, _, _ := f.store.Counts()
	assert.Zero(t, orders)
}

func TestCreate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	req := f.request(dto.WorkOrderLineRequest{ProductID: 999, ProductName: "X", Quantity: d("1"), Unit: "u"})

	_, err := f.uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_FalloEnSalidaRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("exit.create", errors.New("conexión perdida"))

	_, err := f.uc.Create(context.Background(), f.request(f.line(f.aceite, "1", "4")))
	require.Error(t, err)

	orders, lines, exits := f.store.Counts()
	assert.Zero(t, orders)
	assert.Zero(t, lines)
	assert.Zero(t, exits)
	assert.True(t, f.stock(t, f.aceite).Equal(d("10")))

	// El número no se consume: la siguiente orden sigue siendo la 001.
	f.store.FailOn("exit.create", nil)
	assert.Equal(t, "OT-2024-001", f.create(t).Number)
}

func TestCreate_FalloEnLineaRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("work_order.add_product", errors.New("fk"))

	_, err := f.uc.Create(context.Background(), f.request(f.line(f.aceite, "1", "4")))
	require.Error(t, err)
	orders, lines, exits := f.store.Counts()
	assert.Zero(t, orders+lines+exits)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.request())
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin productos")

	_, err = f.uc.Create(ctx, f.request(f.line(f.aceite, "0", "4")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	req := f.request(f.line(f.aceite, "1", "4"))
	req.OrderDate = "10/05/2024"
	_, err = f.uc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fecha")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y estado
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltrosCombinados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	otro := &entity.User{ID: uuid.NewString(), FirstName: "Eva", Email: "eva@taller.com", Role: entity.RoleTecnico, Active: true}
	require.NoError(t, f.store.Users().Create(ctx, otro))

	o1 := f.create(t)
	req := f.request(f.line(f.aceite, "1", "4"))
	req.AssignedUserID = otro.ID
	o2, err := f.uc.Create(ctx, req)
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, o2.ID, entity.WorkOrderInProgress)
	require.NoError(t, err)

	all, err := f.uc.List(ctx, entity.WorkOrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.uc.List(ctx, entity.WorkOrderFilter{UserID: f.tecnico.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, o1.ID, mine[0].ID)

	// El revisor participa en ambas.
	reviewed, err := f.uc.List(ctx, entity.WorkOrderFilter{UserID: f.revisor.ID})
	require.NoError(t, err)
	assert.Len(t, reviewed, 2)

	both, err := f.uc.List(ctx, entity.WorkOrderFilter{UserID: f.revisor.ID, Status: entity.WorkOrderInProgress})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, o2.ID, both[0].ID)
	require.NotNil(t, both[0].AssignedUser)
	assert.Equal(t, "Eva", both[0].AssignedUser.FirstName)

	_, err = f.uc.List(ctx, entity.WorkOrderFilter{Status: "archivada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStats_ConteosPorEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, b, c, e := f.create(t), f.create(t), f.create(t), f.create(t)
	_, err := f.uc.UpdateStatus(ctx, b.ID, entity.WorkOrderInProgress)
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, c.ID, entity.WorkOrderInProgress)
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, c.ID, entity.WorkOrderCompleted)
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, a.ID, entity.WorkOrderCancelled)
	require.NoError(t, err)
	require.NoError(t, f.uc.Remove(ctx, e.ID))

	st, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &dto.WorkOrderStatsResponse{Total: 3, Pending: 0, InProgress: 1, Completed: 1, Cancelled: 1}, st)
}

func TestUpdateStatus_CualquierEstadoDesdeCualquiera(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t)

	got, err := f.uc.UpdateStatus(ctx, o.ID, entity.WorkOrderCompleted)
	require.NoError(t, err, "pendiente pasa directo a completada")
	assert.Equal(t, entity.WorkOrderCompleted, got.Status)

	got, err = f.uc.UpdateStatus(ctx, o.ID, entity.WorkOrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkOrderCancelled, got.Status)

	got, err = f.uc.UpdateStatus(ctx, o.ID, entity.WorkOrderPending)
	require.NoError(t, err, "cancelada vuelve a pendiente")
	assert.Equal(t, entity.WorkOrderPending, got.Status)

	_, err = f.uc.UpdateStatus(ctx, o.ID, entity.WorkOrderPending)
	assert.NoError(t, err, "repetir el estado no es error")

	stored, err := f.uc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkOrderPending, stored.Status)

	_, err = f.uc.UpdateStatus(ctx, o.ID, "archivada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_CabeceraSinTocarLineas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t)

	unit, desc := "BUS-99", "Revisión general"
	got, err := f.uc.Update(ctx, o.ID, dto.UpdateWorkOrderRequest{UnitNumber: &unit, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "BUS-99", got.UnitNumber)
	assert.Equal(t, "Revisión general", got.Description)
	assert.Len(t, got.Products, 1)
	assert.True(t, f.stock(t, f.aceite).Equal(d("9")), "editar no mueve inventario")

	ghost := uuid.NewString()
	_, err = f.uc.Update(ctx, o.ID, dto.UpdateWorkOrderRequest{AssignedUserID: &ghost})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRemove_BajaLogicaConservaSalidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t)

	require.NoError(t, f.uc.Remove(ctx, o.ID))
	_, err := f.uc.Get(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Remove(ctx, o.ID), domain.ErrNotFound)

	assert.Len(t, f.store.ExitsByReference(o.Number), 1)
	assert.True(t, f.stock(t, f.aceite).Equal(d("9")))
}

func TestDownloadPDF(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)

	b, name, err := f.uc.DownloadPDF(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "orden_OT-2024-001.pdf", name)
	assert.Equal(t, []byte("%PDF-1.4"), b)
	require.NotNil(t, f.pdf.got)
	assert.Len(t, f.pdf.got.Products, 1)
	require.NotNil(t, f.pdf.got.AssignedUser)

	_, _, err = f.uc.DownloadPDF(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
