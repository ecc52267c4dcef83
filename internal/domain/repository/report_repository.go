package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItem fila cruda de un producto en o bajo su punto de reorden.
type LowStockItem struct {
	ProductID     string
	SKU           string
	ProductName   string
	LocationID    string
	LocationName  string
	SupplierID    string
	SupplierName  string
	Quantity      int64
	ReorderPoint  int64
	UnitPrice     decimal.Decimal
	AvgDailyUsage float64 // promedio de consumo diario en la ventana configurada
}

// StockSummaryRow totales de inventario por sede.
type StockSummaryRow struct {
	LocationID    string
	LocationName  string
	TotalProducts int
	TotalQuantity int64
	LowStockCount int
	TotalValue    decimal.Decimal // sum(quantity * unit_price)
}

// UsageTrendPoint consumo total de una fecha (para la serie del dashboard).
type UsageTrendPoint struct {
	Date       time.Time
	TotalUsage int64
}

// TopProductRow producto con mayor consumo en una ventana de días.
type TopProductRow struct {
	ProductID   string
	ProductName string
	SKU         string
	TotalUsage  int64
}

// ReportRepository define el puerto de consultas agregadas para reportes y dashboard.
// Son lecturas puras; ningún método persiste nada.
type ReportRepository interface {
	// GetLowStockItems devuelve filas con quantity <= reorder_point (reorder_point > 0),
	// con su proveedor y el consumo diario promedio de los últimos usageWindowDays días.
	// Si locationID es vacío considera solo sedes tipo warehouse (destino de compras).
	GetLowStockItems(ctx context.Context, locationID string, usageWindowDays int) ([]LowStockItem, error)
	GetStockSummary(ctx context.Context, locationID string) ([]StockSummaryRow, error)
	GetUsageTrend(ctx context.Context, locationID string, start, end time.Time) ([]UsageTrendPoint, error)
	GetTopProducts(ctx context.Context, locationID string, since time.Time, limit int) ([]TopProductRow, error)
}
