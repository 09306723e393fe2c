package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/operaciones-api/internal/application/auth"
	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/application/inventory"
	"github.com/jhoicas/operaciones-api/internal/application/usecase"
	"github.com/jhoicas/operaciones-api/internal/application/workorder"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
	"github.com/jhoicas/operaciones-api/internal/infrastructure/excel"
	"github.com/jhoicas/operaciones-api/internal/infrastructure/memory"
	"github.com/jhoicas/operaciones-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/operaciones-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/operaciones-api/pkg/jwt"
	"github.com/jhoicas/operaciones-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Harness: router completo sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePDF struct{}

func (fakePDF) GenerateWorkOrderPDF(_ context.Context, _ *entity.WorkOrder) ([]byte, error) {
	return []byte("%PDF-1.4 prueba"), nil
}

type harness struct {
	app        *fiber.App
	store      *memory.Store
	admin      *dto.UserResponse
	bodeguero  *dto.UserResponse
	tecnico    *dto.UserResponse
	categoryID int64
	unitID     int64
	providerID int64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	log := logger.NewWriter(io.Discard, "info")
	s := memory.NewStore()

	userUC := usecase.NewUserUseCase(s.Users())
	h := &harness{store: s}
	mk := func(nombre, correo, role string) *dto.UserResponse {
		u, err := userUC.Create(ctx, dto.CreateUserRequest{
			FirstName: nombre, LastName: "Prueba", DNI: "1234567", Email: correo, Password: "secreto123", Role: role,
		})
		require.NoError(t, err)
		return u
	}
	h.admin = mk("Admin", "admin@taller.com", entity.RoleAdmin)
	h.bodeguero = mk("Bodega", "bodega@taller.com", entity.RoleBodeguero)
	h.tecnico = mk("Tecnico", "tecnico@taller.com", entity.RoleTecnico)

	cat := &entity.Category{Name: "Lubricantes", CodePrefix: "LUB", Active: true}
	unit := &entity.Unit{Name: "Litro", Abbreviation: "L", Active: true}
	prov := &entity.Provider{Name: "Lubricantes SA", Active: true}
	require.NoError(t, s.Categories().Create(ctx, cat))
	require.NoError(t, s.Units().Create(ctx, unit))
	require.NoError(t, s.Providers().Create(ctx, prov))
	h.categoryID, h.unitID, h.providerID = cat.ID, unit.ID, prov.ID

	images := storage.NewDiskStore(t.TempDir(), "/uploads", 200)

	h.app = fiber.New()
	apphttp.Router(h.app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, log),
		UserUC:        userUC,
		CategoryUC:    usecase.NewCategoryUseCase(s.Categories()),
		UnitUC:        usecase.NewUnitUseCase(s.Units()),
		ProviderUC:    usecase.NewProviderUseCase(s.Providers()),
		ProductUC:     usecase.NewProductUseCase(s.Products(), s.Categories(), s.Units(), s.Providers()),
		LedgerUC:      inventory.NewLedgerUseCase(s, s.Providers(), s.Entries(), s.Exits(), log),
		StockUC:       inventory.NewStockReportUseCase(s.Products(), excel.NewStockExporter()),
		WorkOrderUC:   workorder.NewWorkOrderUseCase(s, s.WorkOrders(), s.Users(), fakePDF{}, log),
		PostUC:        usecase.NewPostUseCase(s.Posts(), images, log),
		ConfigImageUC: usecase.NewConfigImageUseCase(s.ConfigImages(), images, log),
		JWTSecret:     testJWTSecret,
	})
	return h
}

// do envía body como JSON (si no es nil) con el token del usuario indicado (si no es nil).
func (h *harness) do(t *testing.T, method, path string, user *dto.UserResponse, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		tok, err := tokenFor(user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func tokenFor(u *dto.UserResponse) (string, error) {
	return pkgjwt.Generate(testJWTSecret, u.ID, u.Email, u.Role, testIssuer, testExpMin)
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// createProduct crea un producto vía API como bodeguero y devuelve su id.
func (h *harness) createProduct(t *testing.T, nombre string, minimo int) int64 {
	t.Helper()
	resp := h.do(t, http.MethodPost, "/api/inventory/products", h.bodeguero, map[string]any{
		"nombre": nombre, "stock_minimo": minimo, "precio_unitario": 10,
		"id_categoria": h.categoryID, "id_unidad": h.unitID, "id_proveedor": h.providerID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)
	return p.ID
}

func (h *harness) entry(t *testing.T, productID int64, qty, price int) {
	t.Helper()
	resp := h.do(t, http.MethodPost, "/api/inventory/entries", h.bodeguero, map[string]any{
		"id_producto": productID, "id_proveedor": h.providerID, "cantidad": qty, "precio_unitario": price,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"correo": "ADMIN@taller.com", "password": "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LoginResponse
	decode(t, resp, &out)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, h.admin.ID, out.User.ID)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"correo": "admin@taller.com", "password": "otra-clave"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_CorreoInvalido_Retorna400ConDetalle(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"correo": "no-es-correo", "password": "x"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "email", out.Details["correo"])
}

func TestRutaProtegida_SinToken_Retorna401(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/api/inventory/products", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsuarios_SoloAdmin(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/users", h.tecnico, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/users", h.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []dto.UserResponse
	decode(t, resp, &users)
	assert.Len(t, users, 3)
}

func TestUsuarios_AdminNoPuedeEliminarseASiMismo(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodDelete, "/api/users/"+h.admin.ID, h.admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos y productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearProveedor_RUCConLetras_Retorna400(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodPost, "/api/inventory/providers", h.bodeguero, map[string]string{
		"nombre": "Repuestos Norte", "ruc": "17ABC45678001", "telefono": "0991234567",
		"email": "ventas@norte.com", "direccion": "Av. Principal 123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "digits", out.Details["ruc"])
}

func TestCrearProveedor_Valido(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodPost, "/api/inventory/providers", h.bodeguero, map[string]string{
		"nombre": "Repuestos Norte", "ruc": "1790012345001", "telefono": "0991234567",
		"email": "ventas@norte.com", "direccion": "Av. Principal 123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.ProviderResponse
	decode(t, resp, &out)
	assert.NotZero(t, out.ID)
	assert.True(t, out.Active)
}

func TestCrearProducto_TecnicoSinPermiso(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodPost, "/api/inventory/products", h.tecnico, map[string]any{
		"nombre": "Aceite", "id_categoria": h.categoryID, "id_unidad": h.unitID, "id_proveedor": h.providerID,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestObtenerProducto_IDInvalidoYNoExistente(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/inventory/products/abc", h.tecnico, nil)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", out.Code)

	resp = h.do(t, http.MethodGet, "/api/inventory/products/999", h.tecnico, nil)
	decode(t, resp, &out)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas, salidas y stock
// ──────────────────────────────────────────────────────────────────────────────

func TestEntradasYSalidas_ActualizanStockYCosto(t *testing.T) {
	h := newHarness(t)
	id := h.createProduct(t, "Aceite 15W40", 5)
	h.entry(t, id, 10, 5)
	h.entry(t, id, 10, 7)

	resp := h.do(t, http.MethodPost, "/api/inventory/exits", h.bodeguero, map[string]any{
		"id_producto": id, "cantidad": 5, "motivo": "Consumo interno",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var exit dto.ExitResponse
	decode(t, resp, &exit)
	assert.True(t, exit.UnitCost.Equal(decimal.NewFromInt(6)), "costo de la salida: %s", exit.UnitCost)

	resp = h.do(t, http.MethodGet, fmt.Sprintf("/api/inventory/products/%d", id), h.tecnico, nil)
	var p dto.ProductResponse
	decode(t, resp, &p)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(15)), "stock: %s", p.Stock)
	assert.True(t, p.AverageCost.Equal(decimal.NewFromInt(6)), "costo promedio: %s", p.AverageCost)
}

func TestSalida_StockInsuficiente_Retorna409(t *testing.T) {
	h := newHarness(t)
	id := h.createProduct(t, "Filtro", 1)
	h.entry(t, id, 3, 12)

	resp := h.do(t, http.MethodPost, "/api/inventory/exits", h.bodeguero, map[string]any{
		"id_producto": id, "cantidad": 4, "motivo": "Consumo interno",
	})
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
}

func TestEntrada_CantidadCero_Retorna400(t *testing.T) {
	h := newHarness(t)
	id := h.createProduct(t, "Filtro", 1)

	resp := h.do(t, http.MethodPost, "/api/inventory/entries", h.bodeguero, map[string]any{
		"id_producto": id, "id_proveedor": h.providerID, "cantidad": 0, "precio_unitario": 3,
	})
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "gt", out.Details["cantidad"])
}

func TestReporteStock_YExportacion(t *testing.T) {
	h := newHarness(t)
	id := h.createProduct(t, "Aceite 15W40", 5)
	h.entry(t, id, 4, 10)

	resp := h.do(t, http.MethodGet, "/api/inventory/stock", h.tecnico, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rep dto.StockReportResponse
	decode(t, resp, &rep)
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "BAJO", rep.Items[0].Alert)
	assert.Equal(t, 1, rep.LowStockCount)
	assert.True(t, rep.TotalValue.Equal(decimal.NewFromInt(40)))

	resp = h.do(t, http.MethodGet, "/api/inventory/stock/export", h.tecnico, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock.xlsx")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("PK")), "xlsx es un zip")
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de trabajo
// ──────────────────────────────────────────────────────────────────────────────

func (h *harness) orderBody(productID int64, qty int) map[string]any {
	return map[string]any{
		"fecha_orden":         "2024-05-10",
		"numero_unidad":       "U-12",
		"descripcion":         "Cambio de aceite",
		"id_usuario_asignado": h.tecnico.ID,
		"id_usuario_revisor":  h.admin.ID,
		"productos": []map[string]any{{
			"id_producto": productID, "nombre_producto": "Aceite 15W40", "cantidad": qty, "unidad": "L", "costo_unitario": 5,
		}},
	}
}

func TestOrden_CrearCambiarEstadoYPDF(t *testing.T) {
	h := newHarness(t)
	id := h.createProduct(t, "Aceite 15W40", 1)
	h.entry(t, id, 10, 5)

	resp := h.do(t, http.MethodPost, "/api/work-orders", h.tecnico, h.orderBody(id, 4))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order dto.WorkOrderResponse
	decode(t, resp, &order)
	assert.Equal(t, fmt.Sprintf("OT-%d-001", time.Now().Year()), order.Number)
	assert.Equal(t, entity.WorkOrderPending, order.Status)
	require.Len(t, order.Products, 1)

	// el estado puede saltar y volver atrás
	path := fmt.Sprintf("/api/work-orders/%d/status", order.ID)
	resp = h.do(t, http.MethodPatch, path, h.tecnico, map[string]string{"estado": "completada"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &order)
	assert.Equal(t, entity.WorkOrderCompleted, order.Status)

	resp = h.do(t, http.MethodPatch, path, h.tecnico, map[string]string{"estado": "archivada"})
	var errOut dto.ErrorResponse
	decode(t, resp, &errOut)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.do(t, http.MethodPatch, path, h.tecnico, map[string]string{"estado": "en_proceso"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &order)
	assert.Equal(t, entity.WorkOrderInProgress, order.Status)

	resp = h.do(t, http.MethodGet, "/api/work-orders/stats/summary", h.tecnico, nil)
	var stats dto.WorkOrderStatsResponse
	decode(t, resp, &stats)
	assert.Equal(t, dto.WorkOrderStatsResponse{Total: 1, InProgress: 1}, stats)

	resp = h.do(t, http.MethodGet, fmt.Sprintf("/api/work-orders/%d/pdf", order.ID), h.tecnico, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), order.Number)
}

func TestOrden_StockInsuficiente_NoDescuenta(t *testing.T) {
	h := newHarness(t)
	id := h.createProduct(t, "Aceite 15W40", 1)
	h.entry(t, id, 2, 5)

	resp := h.do(t, http.MethodPost, "/api/work-orders", h.tecnico, h.orderBody(id, 3))
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)

	orders, lines, exits := h.store.Counts()
	assert.Zero(t, orders)
	assert.Zero(t, lines)
	assert.Zero(t, exits)
}

func TestOrden_SinProductos_Retorna400(t *testing.T) {
	h := newHarness(t)
	body := h.orderBody(1, 1)
	body["productos"] = []map[string]any{}

	resp := h.do(t, http.MethodPost, "/api/work-orders", h.tecnico, body)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "min", out.Details["productos"])
}

func TestOrden_EliminarSoloSupervisores(t *testing.T) {
	h := newHarness(t)
	id := h.createProduct(t, "Aceite 15W40", 1)
	h.entry(t, id, 10, 5)
	resp := h.do(t, http.MethodPost, "/api/work-orders", h.tecnico, h.orderBody(id, 1))
	var order dto.WorkOrderResponse
	decode(t, resp, &order)
	path := fmt.Sprintf("/api/work-orders/%d", order.ID)

	resp = h.do(t, http.MethodDelete, path, h.tecnico, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = h.do(t, http.MethodDelete, path, h.admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.do(t, http.MethodGet, path, h.admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrden_FiltroEstadoInvalido_Retorna400(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/api/work-orders?estado=archivada", h.tecnico, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Posts e imágenes de configuración (multipart)
// ──────────────────────────────────────────────────────────────────────────────

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(w, h, color.NRGBA{B: 180, A: 255}), imaging.PNG))
	return buf.Bytes()
}

// upload envía un formulario multipart: campos de texto y archivos bajo el campo field.
func (h *harness) upload(t *testing.T, path string, user *dto.UserResponse, fields map[string]string, field string, files ...[]byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for i, data := range files {
		fw, err := w.CreateFormFile(field, fmt.Sprintf("foto%d.png", i))
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if user != nil {
		tok, err := tokenFor(user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestPosts_PublicarLikeComentarioYEliminar(t *testing.T) {
	h := newHarness(t)
	resp := h.upload(t, "/api/posts", h.tecnico,
		map[string]string{"userName": "Tecnico Prueba", "content": "Bus 12 listo"},
		"images", pngBytes(t, 20, 20), pngBytes(t, 400, 100))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post dto.PostResponse
	decode(t, resp, &post)
	assert.Equal(t, "Bus 12 listo", post.Content)
	require.Len(t, post.ImageURLs, 2)
	for _, u := range post.ImageURLs {
		assert.Regexp(t, `^/uploads/posts/[0-9a-f-]{36}\.png$`, u)
	}

	path := fmt.Sprintf("/api/posts/%d", post.ID)
	resp = h.do(t, http.MethodPatch, path+"/like", h.bodeguero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &post)
	assert.Equal(t, 1, post.Likes)

	resp = h.do(t, http.MethodPatch, path+"/comment", h.bodeguero, nil)
	decode(t, resp, &post)
	assert.Equal(t, 1, post.Comments)

	resp = h.do(t, http.MethodGet, "/api/posts", h.tecnico, nil)
	var list []dto.PostResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Likes)

	resp = h.do(t, http.MethodDelete, path, h.tecnico, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = h.do(t, http.MethodDelete, path, h.admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.do(t, http.MethodGet, path, h.admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPosts_ArchivoQueNoEsImagen_Retorna400(t *testing.T) {
	h := newHarness(t)
	resp := h.upload(t, "/api/posts", h.tecnico,
		map[string]string{"userName": "Tecnico", "content": "x"}, "images", []byte("no soy una imagen"))
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/posts", h.tecnico, nil)
	var list []dto.PostResponse
	decode(t, resp, &list)
	assert.Empty(t, list)
}

func TestPosts_SinContenido_Retorna400(t *testing.T) {
	h := newHarness(t)
	resp := h.upload(t, "/api/posts", h.tecnico, map[string]string{"userName": "Tecnico"}, "images")
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "required", out.Details["content"])
}

func TestPosts_RequiereToken(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodGet, "/api/posts", nil, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConfigImages_LecturaPublicaEscrituraAdmin(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/configuration/images/hero", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.ConfigImageResponse
	decode(t, resp, &list)
	assert.Empty(t, list)

	resp = h.upload(t, "/api/configuration/images", h.bodeguero, map[string]string{"section": "hero"}, "image", pngBytes(t, 10, 10))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = h.upload(t, "/api/configuration/images", h.admin, map[string]string{"section": "hero"}, "image")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin archivo")

	resp = h.upload(t, "/api/configuration/images", h.admin,
		map[string]string{"section": "hero", "title": "Portada"}, "image", pngBytes(t, 10, 10))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.ConfigImageResponse
	decode(t, resp, &created)
	assert.True(t, created.Active)
	assert.Equal(t, "Portada", created.Title)
	assert.Regexp(t, `^/uploads/config/`, created.ImageURL)

	resp = h.do(t, http.MethodGet, "/api/configuration/images/hero", nil, nil)
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	path := "/api/configuration/images/" + created.ID
	resp = h.do(t, http.MethodPatch, path, h.admin, map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(t, http.MethodGet, "/api/configuration/images/hero", nil, nil)
	decode(t, resp, &list)
	assert.Empty(t, list, "las inactivas no salen por sección")

	resp = h.do(t, http.MethodGet, "/api/configuration/images", nil, nil)
	decode(t, resp, &list)
	assert.Len(t, list, 1)

	resp = h.do(t, http.MethodDelete, path, h.admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.do(t, http.MethodDelete, path, h.admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
