package dto

import "github.com/shopspring/decimal"

// LowStockItemDTO fila del reporte de stock bajo.
type LowStockItemDTO struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int64  `json:"current_quantity"`
	ReorderPoint int64  `json:"reorder_point"`
	Shortage     int64  `json:"shortage"` // reorder_point - current_quantity
}

// PurchaseSuggestionProduct producto sugerido dentro del grupo de un proveedor.
type PurchaseSuggestionProduct struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	CurrentQuantity   int64           `json:"current_quantity"`
	ReorderPoint      int64           `json:"reorder_point"`
	AvgDailyUsage     float64         `json:"avg_daily_usage"`
	SuggestedQuantity int64           `json:"suggested_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"` // SuggestedQuantity * UnitPrice
}

// PurchaseSuggestionGroup sugerencias de compra agrupadas por proveedor.
type PurchaseSuggestionGroup struct {
	SupplierID     string                      `json:"supplier_id"`
	SupplierName   string                      `json:"supplier_name"`
	Products       []PurchaseSuggestionProduct `json:"products"`
	EstimatedTotal decimal.Decimal             `json:"estimated_total"`
}

// StockSummaryDTO totales de inventario por sede.
type StockSummaryDTO struct {
	LocationID    string          `json:"location_id"`
	LocationName  string          `json:"location_name"`
	TotalProducts int             `json:"total_products"`
	TotalQuantity int64           `json:"total_quantity"`
	LowStockCount int             `json:"low_stock_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// UsageAnalysisDTO análisis de consumo por producto en una ventana de días.
type UsageAnalysisDTO struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	SKU           string  `json:"sku"`
	TotalUsage    int64   `json:"total_usage"`
	AvgDailyUsage float64 `json:"avg_daily_usage"`
	CountDays     int     `json:"count_days"`
	UsageTrend    string  `json:"usage_trend"` // high | medium | low
}

// UsageTrendPointDTO punto de la serie de consumo diario del dashboard.
type UsageTrendPointDTO struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Usage int64  `json:"usage"`
}

// TopProductDTO producto con mayor consumo reciente.
type TopProductDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	TotalUsage  int64  `json:"total_usage"`
}
