package repository

import (
	"context"

	"github.com/jortega/stock-management-api/internal/domain/entity"
)

// InventoryItem fila enriquecida de inventario para listados (producto + sede).
type InventoryItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	LocationID   string
	LocationName string
	Quantity     int64
	ReorderPoint int64
}

// InventoryFilter criterios de listado de inventario.
type InventoryFilter struct {
	LocationID string
	Search     string
	LowStock   bool // solo filas con quantity <= reorder_point
}

// InventoryRepository define el puerto para consultar/actualizar stock por sede+producto.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	Get(ctx context.Context, productID, locationID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si la fila no
	// existe devuelve un registro en cero: se crea de forma perezosa con el Upsert.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Inventory, error)
	Upsert(ctx context.Context, inv *entity.Inventory) error
	List(ctx context.Context, filter InventoryFilter) ([]InventoryItem, error)
}
