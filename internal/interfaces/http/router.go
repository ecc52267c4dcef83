package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/stock-management-api/internal/application/analytics"
	"github.com/jortega/stock-management-api/internal/application/auth"
	appstock "github.com/jortega/stock-management-api/internal/application/stock"
	"github.com/jortega/stock-management-api/internal/application/usecase"
	"github.com/jortega/stock-management-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	LocationUC   *usecase.LocationUseCase
	SupplierUC   *usecase.SupplierUseCase
	BrandUC      *usecase.BrandUseCase
	ProductUC    *usecase.ProductUseCase
	InventoryUC  *usecase.InventoryUseCase
	Recorder     *appstock.RecorderUseCase
	DailyCountUC *appstock.DailyCountUseCase
	SuggestionUC *appstock.SuggestionUseCase
	ReportUC     *analytics.ReportUseCase
	DashboardUC  *analytics.DashboardUseCase
	PDFGenerator appstock.PurchaseOrderPDFGenerator
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Locations: lectura para todos, escritura solo admin
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", adminOnly, locationHandler.Create)
	locations.Put("/:id", adminOnly, locationHandler.Update)
	locations.Delete("/:id", adminOnly, locationHandler.Deactivate)

	// Suppliers: escritura admin/manager
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", managers, supplierHandler.Create)
	suppliers.Put("/:id", managers, supplierHandler.Update)
	suppliers.Delete("/:id", managers, supplierHandler.Delete)

	// Brands: escritura admin/manager
	brands := protected.Group("/brands")
	brandHandler := NewBrandHandler(deps.BrandUC)
	brands.Get("/", brandHandler.List)
	brands.Get("/:id", brandHandler.GetByID)
	brands.Post("/", managers, brandHandler.Create)
	brands.Put("/:id", managers, brandHandler.Update)
	brands.Delete("/:id", managers, brandHandler.Delete)

	// Products: escritura admin/manager
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", managers, productHandler.Create)
	products.Put("/:id", managers, productHandler.Update)
	products.Delete("/:id", managers, productHandler.Delete)

	// Inventory: consulta para todos (staff anclado a su sede), ajuste admin/manager
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Recorder, deps.ReportUC)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/summary", inventoryHandler.Summary)
	invGroup.Post("/adjust", managers, inventoryHandler.Adjust)
	invGroup.Get("/:product_id/:location_id", inventoryHandler.Get)

	// Stock: entradas y traslados
	stockHandler := NewStockHandler(deps.Recorder)
	protected.Post("/stock-in", stockHandler.StockIn)
	protected.Post("/stock-transfer", stockHandler.Transfer)
	transactions := protected.Group("/transactions")
	transactions.Get("/", stockHandler.ListTransactions)
	transactions.Get("/:id", stockHandler.GetTransaction)

	// Daily counts: registro y corrección
	counts := protected.Group("/daily-counts")
	dailyCountHandler := NewDailyCountHandler(deps.DailyCountUC)
	counts.Post("/", dailyCountHandler.Record)
	counts.Get("/", dailyCountHandler.List)
	counts.Get("/usage-summary", dailyCountHandler.UsageSummary)
	counts.Put("/:id", dailyCountHandler.Update)

	// Reports: solo admin/manager
	reports := protected.Group("/reports", managers)
	reportHandler := NewReportHandler(deps.ReportUC, deps.SuggestionUC, deps.PDFGenerator)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/purchase-suggestions", reportHandler.PurchaseSuggestions)
	reports.Get("/purchase-order.pdf", reportHandler.PurchaseOrderPDF)
	reports.Get("/stock-summary", reportHandler.StockSummary)
	reports.Get("/usage-analysis", reportHandler.UsageAnalysis)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/usage-trend", dashboardHandler.UsageTrend)
	dashboard.Get("/top-products", dashboardHandler.TopProducts)
}
