package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	BrandID      string          `json:"brand_id"`
	SupplierID   string          `json:"supplier_id"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit"`
	ReorderPoint int64           `json:"reorder_point"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ImageURL     string          `json:"image_url,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil = sin cambio.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	BrandID      *string          `json:"brand_id,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	ReorderPoint *int64           `json:"reorder_point,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	ImageURL     *string          `json:"image_url,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	BrandID      string          `json:"brand_id"`
	SupplierID   string          `json:"supplier_id"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit"`
	ReorderPoint int64           `json:"reorder_point"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ImageURL     string          `json:"image_url,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
