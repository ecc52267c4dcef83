package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jortega/stock-management-api/internal/application/analytics"
	"github.com/jortega/stock-management-api/internal/application/auth"
	appstock "github.com/jortega/stock-management-api/internal/application/stock"
	"github.com/jortega/stock-management-api/internal/application/usecase"
	infracache "github.com/jortega/stock-management-api/internal/infrastructure/cache"
	infrapdf "github.com/jortega/stock-management-api/internal/infrastructure/pdf"
	"github.com/jortega/stock-management-api/internal/infrastructure/postgres"
	httpRouter "github.com/jortega/stock-management-api/internal/interfaces/http"
	"github.com/jortega/stock-management-api/pkg/config"
	"github.com/jortega/stock-management-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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
	locationRepo := postgres.NewLocationRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	transactionRepo := postgres.NewStockTransactionRepository(pool)
	countRepo := postgres.NewDailyCountRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	dashCache, err := infracache.New(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}

	authUC := auth.NewAuthUseCase(userRepo, locationRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	locationUC := usecase.NewLocationUseCase(locationRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	brandUC := usecase.NewBrandUseCase(brandRepo)
	productUC := usecase.NewProductUseCase(productRepo, brandRepo, supplierRepo)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo)
	recorderUC := appstock.NewRecorderUseCase(txRunner, productRepo, locationRepo, supplierRepo, transactionRepo)
	dailyCountUC := appstock.NewDailyCountUseCase(txRunner, productRepo, locationRepo, countRepo)
	suggestionUC := appstock.NewSuggestionUseCase(reportRepo, cfg.Stock.SuggestionCoverDays, cfg.Stock.UsageWindowDays)
	reportUC := analytics.NewReportUseCase(reportRepo, countRepo, cfg.Stock.UsageWindowDays)
	dashboardUC := analytics.NewDashboardUseCase(reportRepo, dashCache)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Management API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		LocationUC:   locationUC,
		SupplierUC:   supplierUC,
		BrandUC:      brandUC,
		ProductUC:    productUC,
		InventoryUC:  inventoryUC,
		Recorder:     recorderUC,
		DailyCountUC: dailyCountUC,
		SuggestionUC: suggestionUC,
		ReportUC:     reportUC,
		DashboardUC:  dashboardUC,
		PDFGenerator: pdfGenerator,
		JWTSecret:    cfg.JWT.Secret,
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
