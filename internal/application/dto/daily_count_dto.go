package dto

import "time"

// RecordDailyCountRequest body para POST /api/daily-counts.
// CountDate en formato YYYY-MM-DD; vacío = fecha de hoy.
type RecordDailyCountRequest struct {
	ProductID       string `json:"product_id"`
	LocationID      string `json:"location_id"`
	CountDate       string `json:"count_date,omitempty"`
	CountedQuantity int64  `json:"counted_quantity"`
}

// UpdateDailyCountRequest body para PUT /api/daily-counts/:id.
// Solo permite corregir la cantidad contada; el snapshot inicial se preserva.
type UpdateDailyCountRequest struct {
	CountedQuantity int64 `json:"counted_quantity"`
}

// DailyCountResponse representación HTTP de un conteo diario.
type DailyCountResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	LocationID      string    `json:"location_id"`
	CountDate       string    `json:"count_date"` // YYYY-MM-DD
	OpeningQuantity int64     `json:"opening_quantity"`
	CountedQuantity int64     `json:"counted_quantity"`
	CalculatedUsage int64     `json:"calculated_usage"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DailyCountListResponse listado paginado de conteos.
type DailyCountListResponse struct {
	Items []DailyCountResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// UsageSummaryResponse consumo agregado por producto en un rango.
type UsageSummaryResponse struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	SKU           string  `json:"sku"`
	TotalUsage    int64   `json:"total_usage"`
	AvgDailyUsage float64 `json:"avg_daily_usage"`
	CountDays     int     `json:"count_days"`
}
