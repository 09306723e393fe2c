package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/application/usecase"
	"github.com/jhoicas/operaciones-api/internal/domain"
	"github.com/jhoicas/operaciones-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

type catalogo struct {
	store      *memory.Store
	categories *usecase.CategoryUseCase
	units      *usecase.UnitUseCase
	providers  *usecase.ProviderUseCase
	products   *usecase.ProductUseCase
}

func newCatalogo() catalogo {
	s := memory.NewStore()
	return catalogo{
		store:      s,
		categories: usecase.NewCategoryUseCase(s.Categories()),
		units:      usecase.NewUnitUseCase(s.Units()),
		providers:  usecase.NewProviderUseCase(s.Providers()),
		products:   usecase.NewProductUseCase(s.Products(), s.Categories(), s.Units(), s.Providers()),
	}
}

func (c catalogo) refs(t *testing.T) (int64, int64, int64) {
	t.Helper()
	ctx := context.Background()
	cat, err := c.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Ferretería", CodePrefix: "FER"})
	require.NoError(t, err)
	u, err := c.units.Create(ctx, dto.CreateUnitRequest{Name: "Unidad", Abbreviation: "u"})
	require.NoError(t, err)
	p, err := c.providers.Create(ctx, dto.CreateProviderRequest{
		Name: "Proveedor Uno", RUC: "1790012345001", Phone: "022345678", Email: "ventas@uno.ec", Address: "Av. Amazonas 123",
	})
	require.NoError(t, err)
	return cat.ID, u.ID, p.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_CrudConBajaLogica(t *testing.T) {
	c := newCatalogo()
	ctx := context.Background()

	cat, err := c.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Eléctricos", CodePrefix: "ELE"})
	require.NoError(t, err)
	assert.True(t, cat.Active)

	upd, err := c.categories.Update(ctx, cat.ID, dto.UpdateCategoryRequest{Description: ptr("Material eléctrico")})
	require.NoError(t, err)
	assert.Equal(t, "Material eléctrico", upd.Description)
	assert.Equal(t, "Eléctricos", upd.Name)

	require.NoError(t, c.categories.Delete(ctx, cat.ID))
	_, err = c.categories.GetByID(ctx, cat.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := c.categories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, c.categories.Delete(ctx, cat.ID), domain.ErrNotFound)
}

func TestUnitYProvider_NoEncontrado(t *testing.T) {
	c := newCatalogo()
	ctx := context.Background()
	_, err := c.units.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.providers.Update(ctx, 99, dto.UpdateProviderRequest{Name: ptr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateIniciaEnCero(t *testing.T) {
	c := newCatalogo()
	catID, unitID, provID := c.refs(t)

	p, err := c.products.Create(context.Background(), dto.CreateProductRequest{
		Name: "Tornillo", MinStock: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(1),
		CategoryID: catID, UnitID: unitID, ProviderID: provID,
	})
	require.NoError(t, err)
	assert.True(t, p.Stock.IsZero())
	assert.True(t, p.AverageCost.IsZero())
	assert.True(t, p.Active)
}

func TestProduct_CreateReferenciaInexistente(t *testing.T) {
	c := newCatalogo()
	catID, unitID, _ := c.refs(t)

	_, err := c.products.Create(context.Background(), dto.CreateProductRequest{
		Name: "Tornillo", CategoryID: catID, UnitID: unitID, ProviderID: 999,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_StockMaximoMenorQueMinimo(t *testing.T) {
	c := newCatalogo()
	catID, unitID, provID := c.refs(t)

	_, err := c.products.Create(context.Background(), dto.CreateProductRequest{
		Name: "Tornillo", MinStock: decimal.NewFromInt(10), MaxStock: ptr(decimal.NewFromInt(5)),
		CategoryID: catID, UnitID: unitID, ProviderID: provID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_UpdateNoTocaDerivados(t *testing.T) {
	c := newCatalogo()
	ctx := context.Background()
	catID, unitID, provID := c.refs(t)
	p, err := c.products.Create(ctx, dto.CreateProductRequest{
		Name: "Tornillo", CategoryID: catID, UnitID: unitID, ProviderID: provID,
	})
	require.NoError(t, err)
	require.NoError(t, c.store.Products().UpdateStock(ctx, p.ID, decimal.NewFromInt(40)))

	upd, err := c.products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: ptr("Tornillo 1/4")})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo 1/4", upd.Name)

	got, err := c.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(40)))
}

func TestProduct_DeleteEsLogico(t *testing.T) {
	c := newCatalogo()
	ctx := context.Background()
	catID, unitID, provID := c.refs(t)
	p, err := c.products.Create(ctx, dto.CreateProductRequest{
		Name: "Tornillo", CategoryID: catID, UnitID: unitID, ProviderID: provID,
	})
	require.NoError(t, err)

	require.NoError(t, c.products.Delete(ctx, p.ID))
	_, err = c.products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	raw, err := c.store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.False(t, raw.Active)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func nuevoUsuario(correo string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		FirstName: "Luis", LastName: "Mora", DNI: "1712345678",
		Email: correo, Password: "secreta123", Role: "tecnico",
	}
}

func TestUser_CreateHasheaPassword(t *testing.T) {
	s := memory.NewStore()
	uc := usecase.NewUserUseCase(s.Users())
	ctx := context.Background()

	u, err := uc.Create(ctx, nuevoUsuario("Luis@Example.com"))
	require.NoError(t, err)
	assert.Equal(t, "luis@example.com", u.Email)

	stored, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestUser_CorreoDuplicado(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewStore().Users())
	ctx := context.Background()
	_, err := uc.Create(ctx, nuevoUsuario("luis@example.com"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, nuevoUsuario("LUIS@example.com"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUser_RolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewStore().Users())
	in := nuevoUsuario("luis@example.com")
	in.Role = "vendedor"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUser_DeleteEsFisico(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewStore().Users())
	ctx := context.Background()
	u, err := uc.Create(ctx, nuevoUsuario("luis@example.com"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, u.ID))
	_, err = uc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, u.ID), domain.ErrUserNotFound)
}
