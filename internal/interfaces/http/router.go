package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/operaciones-api/internal/application/auth"
	"github.com/jhoicas/operaciones-api/internal/application/inventory"
	"github.com/jhoicas/operaciones-api/internal/application/usecase"
	"github.com/jhoicas/operaciones-api/internal/application/workorder"
	"github.com/jhoicas/operaciones-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	CategoryUC    *usecase.CategoryUseCase
	UnitUC        *usecase.UnitUseCase
	ProviderUC    *usecase.ProviderUseCase
	ProductUC     *usecase.ProductUseCase
	LedgerUC      *inventory.LedgerUseCase
	StockUC       *inventory.StockReportUseCase
	WorkOrderUC   *workorder.WorkOrderUseCase
	PostUC        *usecase.PostUseCase
	ConfigImageUC *usecase.ConfigImageUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Imágenes del sitio (lectura pública)
	imageHandler := NewConfigImageHandler(deps.ConfigImageUC)
	api.Get("/configuration/images", imageHandler.List)
	api.Get("/configuration/images/:section", imageHandler.ListBySection)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	operators := RequireRole(entity.RoleAdmin, entity.RoleSupervisor, entity.RoleTecnico)
	supervisors := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)

	// Users (sólo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	inv := protected.Group("/inventory")

	// Catálogos
	catalog := NewCatalogHandler(deps.CategoryUC, deps.UnitUC, deps.ProviderUC)
	inv.Get("/categories", catalog.ListCategories)
	inv.Post("/categories", warehouse, catalog.CreateCategory)
	inv.Get("/categories/:id", catalog.GetCategory)
	inv.Put("/categories/:id", warehouse, catalog.UpdateCategory)
	inv.Delete("/categories/:id", warehouse, catalog.DeleteCategory)

	inv.Get("/units", catalog.ListUnits)
	inv.Post("/units", warehouse, catalog.CreateUnit)
	inv.Get("/units/:id", catalog.GetUnit)
	inv.Put("/units/:id", warehouse, catalog.UpdateUnit)
	inv.Delete("/units/:id", warehouse, catalog.DeleteUnit)

	inv.Get("/providers", catalog.ListProviders)
	inv.Post("/providers", warehouse, catalog.CreateProvider)
	inv.Get("/providers/:id", catalog.GetProvider)
	inv.Put("/providers/:id", warehouse, catalog.UpdateProvider)
	inv.Delete("/providers/:id", warehouse, catalog.DeleteProvider)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	inv.Get("/products", productHandler.List)
	inv.Post("/products", warehouse, productHandler.Create)
	inv.Get("/products/:id", productHandler.GetByID)
	inv.Put("/products/:id", warehouse, productHandler.Update)
	inv.Delete("/products/:id", warehouse, productHandler.Delete)

	// Entradas, salidas y stock
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.StockUC)
	inv.Get("/entries", inventoryHandler.ListEntries)
	inv.Post("/entries", warehouse, inventoryHandler.CreateEntry)
	inv.Get("/entries/:id", inventoryHandler.GetEntry)
	inv.Delete("/entries/:id", warehouse, inventoryHandler.DeleteEntry)

	inv.Get("/exits", inventoryHandler.ListExits)
	inv.Post("/exits", warehouse, inventoryHandler.CreateExit)
	inv.Get("/exits/:id", inventoryHandler.GetExit)
	inv.Delete("/exits/:id", warehouse, inventoryHandler.DeleteExit)

	inv.Get("/stock", inventoryHandler.StockReport)
	inv.Get("/stock/export", inventoryHandler.ExportStock)

	// Órdenes de trabajo
	orders := protected.Group("/work-orders")
	orderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", operators, orderHandler.Create)
	orders.Get("/stats/summary", orderHandler.Stats)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id", operators, orderHandler.Update)
	orders.Patch("/:id/status", operators, orderHandler.UpdateStatus)
	orders.Delete("/:id", supervisors, orderHandler.Delete)
	orders.Get("/:id/pdf", orderHandler.DownloadPDF)

	// Muro de publicaciones
	posts := protected.Group("/posts")
	postHandler := NewPostHandler(deps.PostUC)
	posts.Get("/", postHandler.List)
	posts.Post("/", postHandler.Create)
	posts.Get("/:id", postHandler.GetByID)
	posts.Patch("/:id", postHandler.Update)
	posts.Patch("/:id/like", postHandler.Like)
	posts.Patch("/:id/comment", postHandler.Comment)
	posts.Delete("/:id", supervisors, postHandler.Delete)

	images := protected.Group("/configuration/images", adminOnly)
	images.Post("/", imageHandler.Create)
	images.Patch("/:id", imageHandler.Update)
	images.Delete("/:id", imageHandler.Delete)
}
