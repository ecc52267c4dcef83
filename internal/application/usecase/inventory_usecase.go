package usecase

import (
	"context"

	"github.com/jortega/stock-management-api/internal/application/dto"
	"github.com/jortega/stock-management-api/internal/domain"
	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
	domstock "github.com/jortega/stock-management-api/internal/domain/stock"
)

// InventoryUseCase lecturas de inventario (fuera del camino transaccional).
type InventoryUseCase struct {
	invRepo repository.InventoryRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(invRepo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{invRepo: invRepo}
}

// Get obtiene el registro de inventario de un par (producto, sede).
func (uc *InventoryUseCase) Get(ctx context.Context, productID, locationID string) (*entity.Inventory, error) {
	inv, err := uc.invRepo.Get(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// List lista inventario enriquecido con producto y sede, con filtros.
func (uc *InventoryUseCase) List(ctx context.Context, filter repository.InventoryFilter) ([]dto.InventoryItemResponse, error) {
	rows, err := uc.invRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItemResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.InventoryItemResponse{
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			ProductName:  r.ProductName,
			LocationID:   r.LocationID,
			LocationName: r.LocationName,
			Quantity:     r.Quantity,
			ReorderPoint: r.ReorderPoint,
			LowStock:     domstock.BelowReorderPoint(r.Quantity, r.ReorderPoint),
		})
	}
	return items, nil
}
