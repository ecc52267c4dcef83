package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jortega/stock-management-api/internal/domain"
	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
)

// RecorderUseCase registra transacciones de stock de forma transaccional
// (stock_in, transfer, adjustment) con bloqueo de fila (SELECT FOR UPDATE)
// y Commit/Rollback: la fila inmutable y la mutación del inventario se
// confirman juntas o no se confirma ninguna.
type RecorderUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	supplierRepo repository.SupplierRepository
	historyRepo  repository.StockTransactionRepository // lecturas fuera de tx
}

// NewRecorderUseCase construye el caso de uso.
func NewRecorderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	supplierRepo repository.SupplierRepository,
	historyRepo repository.StockTransactionRepository,
) *RecorderUseCase {
	return &RecorderUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		supplierRepo: supplierRepo,
		historyRepo:  historyRepo,
	}
}

// StockIn registra una entrada de mercancía. Solo sedes tipo warehouse pueden
// recibir entradas: la regla se verifica aquí, no en la capa de presentación.
func (uc *RecorderUseCase) StockIn(ctx context.Context, actor Actor, in StockInInput) (*entity.StockTransaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !actor.CanActOnLocation(in.LocationID) {
		return nil, domain.ErrForbidden
	}
	if _, err := uc.activeProduct(in.ProductID); err != nil {
		return nil, err
	}
	loc, err := uc.activeLocation(in.LocationID)
	if err != nil {
		return nil, err
	}
	if !loc.IsWarehouse() {
		return nil, domain.ErrWarehouseOnly
	}
	var supplierID *string
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
		supplierID = &in.SupplierID
	}

	now := time.Now()
	record := &entity.StockTransaction{
		ID:           uuid.New().String(),
		Type:         entity.TransactionTypeStockIn,
		ProductID:    in.ProductID,
		ToLocationID: &in.LocationID,
		Quantity:     in.Quantity,
		SupplierID:   supplierID,
		Notes:        in.Notes,
		CreatedBy:    actor.UserID,
		CreatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txRepo repository.StockTransactionRepository,
		_ repository.DailyCountRepository,
	) error {
		// Bloquea la fila de inventario para evitar dobles incrementos concurrentes
		inv, err := invRepo.GetForUpdate(ctx, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		inv.Quantity += in.Quantity
		inv.UpdatedAt = now
		if err := invRepo.Upsert(ctx, inv); err != nil {
			return err
		}
		return txRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Transfer traslada mercancía entre dos sedes. Falla con ErrInsufficientStock
// si la sede origen quedaría en negativo; el total entre sedes se conserva.
func (uc *RecorderUseCase) Transfer(ctx context.Context, actor Actor, in TransferInput) (*entity.StockTransaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !actor.CanActOnLocation(in.FromLocationID) {
		return nil, domain.ErrForbidden
	}
	if _, err := uc.activeProduct(in.ProductID); err != nil {
		return nil, err
	}
	if _, err := uc.activeLocation(in.FromLocationID); err != nil {
		return nil, err
	}
	if _, err := uc.activeLocation(in.ToLocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entity.StockTransaction{
		ID:             uuid.New().String(),
		Type:           entity.TransactionTypeTransfer,
		ProductID:      in.ProductID,
		FromLocationID: &in.FromLocationID,
		ToLocationID:   &in.ToLocationID,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
		CreatedBy:      actor.UserID,
		CreatedAt:      now,
	}

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txRepo repository.StockTransactionRepository,
		_ repository.DailyCountRepository,
	) error {
		// Bloquea primero la sede origen: dos transfers concurrentes sobre la
		// misma fila no pueden gastar dos veces el mismo stock
		origin, err := invRepo.GetForUpdate(ctx, in.ProductID, in.FromLocationID)
		if err != nil {
			return err
		}
		if origin.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		dest, err := invRepo.GetForUpdate(ctx, in.ProductID, in.ToLocationID)
		if err != nil {
			return err
		}
		origin.Quantity -= in.Quantity
		dest.Quantity += in.Quantity
		origin.UpdatedAt = now
		dest.UpdatedAt = now
		if err := invRepo.Upsert(ctx, origin); err != nil {
			return err
		}
		if err := invRepo.Upsert(ctx, dest); err != nil {
			return err
		}
		return txRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Adjust fija la cantidad absoluta del registro (merma, daño, corrección).
// La transacción guarda el delta con signo; la cantidad objetivo nunca es negativa.
func (uc *RecorderUseCase) Adjust(ctx context.Context, actor Actor, in AdjustmentInput) (*entity.StockTransaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !actor.CanActOnLocation(in.LocationID) {
		return nil, domain.ErrForbidden
	}
	if _, err := uc.activeProduct(in.ProductID); err != nil {
		return nil, err
	}
	if _, err := uc.activeLocation(in.LocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	notes := in.Reason
	if notes == "" {
		notes = "ajuste manual"
	}
	record := &entity.StockTransaction{
		ID:             uuid.New().String(),
		Type:           entity.TransactionTypeAdjustment,
		ProductID:      in.ProductID,
		FromLocationID: &in.LocationID,
		Notes:          notes,
		CreatedBy:      actor.UserID,
		CreatedAt:      now,
	}

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txRepo repository.StockTransactionRepository,
		_ repository.DailyCountRepository,
	) error {
		inv, err := invRepo.GetForUpdate(ctx, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		record.Quantity = in.NewQuantity - inv.Quantity
		inv.Quantity = in.NewQuantity
		inv.UpdatedAt = now
		if err := invRepo.Upsert(ctx, inv); err != nil {
			return err
		}
		return txRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetTransaction consulta una transacción del historial por ID.
func (uc *RecorderUseCase) GetTransaction(ctx context.Context, id string) (*entity.StockTransaction, error) {
	tx, err := uc.historyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return tx, nil
}

// ListTransactions consulta el historial con filtros y paginación.
func (uc *RecorderUseCase) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]*entity.StockTransaction, int, error) {
	return uc.historyRepo.List(ctx, filter)
}

func (uc *RecorderUseCase) activeProduct(id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrInactiveResource, product.SKU)
	}
	return product, nil
}

func (uc *RecorderUseCase) activeLocation(id string) (*entity.Location, error) {
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if !loc.IsActive {
		return nil, fmt.Errorf("%w: sede %s", domain.ErrInactiveResource, loc.Name)
	}
	return loc, nil
}
