package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-sede).
// ReorderPoint es el umbral de reposición; el stock por sede vive en Inventory.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	BrandID      string
	SupplierID   string
	Category     string
	Unit         string          // unidad de medida: unidad, kg, caja, etc.
	ReorderPoint int64           // umbral de reposición (>= 0)
	UnitPrice    decimal.Decimal // precio de compra unitario
	ImageURL     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
