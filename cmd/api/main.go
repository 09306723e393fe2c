package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/operaciones-api/internal/application/auth"
	"github.com/jhoicas/operaciones-api/internal/application/dto"
	"github.com/jhoicas/operaciones-api/internal/application/inventory"
	"github.com/jhoicas/operaciones-api/internal/application/usecase"
	"github.com/jhoicas/operaciones-api/internal/application/workorder"
	"github.com/jhoicas/operaciones-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/operaciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/operaciones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/operaciones-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/operaciones-api/internal/interfaces/http"
	"github.com/jhoicas/operaciones-api/pkg/config"
	"github.com/jhoicas/operaciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	exitRepo := postgres.NewExitRepository(pool)
	orderRepo := postgres.NewWorkOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, providerRepo, entryRepo, exitRepo, log)
	stockUC := inventory.NewStockReportUseCase(productRepo, excel.NewStockExporter())

	// PDF: hoja imprimible de la orden de trabajo
	pdfGenerator := infrapdf.NewWorkOrderPDFGenerator(cfg.App.Name)
	workOrderUC := workorder.NewWorkOrderUseCase(txRunner, orderRepo, userRepo, pdfGenerator, log)

	// Imágenes de posts y configuración: disco local o Cloud Storage
	var images usecase.ImageStore
	switch cfg.Storage.Driver {
	case config.StorageGCS:
		gcs, err := storage.NewGCSStore(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsJSON, cfg.Storage.BaseURL, cfg.Storage.MaxImageSide)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento GCS")
		}
		defer gcs.Close()
		images = gcs
	default:
		images = storage.NewDiskStore(cfg.Storage.Dir, cfg.Storage.PublicPath, cfg.Storage.MaxImageSide)
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("almacenamiento de imágenes listo")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    (usecase.MaxPostImages + 1) * storage.MaxUploadBytes,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Operaciones API",
	}))

	if cfg.Storage.Driver == config.StorageLocal {
		app.Static(cfg.Storage.PublicPath, cfg.Storage.Dir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(userRepo),
		CategoryUC:    usecase.NewCategoryUseCase(categoryRepo),
		UnitUC:        usecase.NewUnitUseCase(unitRepo),
		ProviderUC:    usecase.NewProviderUseCase(providerRepo),
		ProductUC:     usecase.NewProductUseCase(productRepo, categoryRepo, unitRepo, providerRepo),
		LedgerUC:      ledgerUC,
		StockUC:       stockUC,
		WorkOrderUC:   workOrderUC,
		PostUC:        usecase.NewPostUseCase(postgres.NewPostRepository(pool), images, log),
		ConfigImageUC: usecase.NewConfigImageUseCase(postgres.NewConfigImageRepository(pool), images, log),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
