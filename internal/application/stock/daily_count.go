package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jortega/stock-management-api/internal/domain"
	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
	domstock "github.com/jortega/stock-management-api/internal/domain/stock"
)

// RecordCountInput datos para registrar el conteo físico de un día.
type RecordCountInput struct {
	ProductID       string
	LocationID      string
	CountDate       time.Time // se normaliza a fecha sin hora
	CountedQuantity int64
}

// Validate verifica campos requeridos y cantidad contada no negativa.
func (in RecordCountInput) Validate() error {
	if in.ProductID == "" || in.LocationID == "" {
		return domain.ErrInvalidInput
	}
	if in.CountedQuantity < 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// DailyCountUseCase concilia conteos físicos diarios contra el inventario:
// toma el stock registrado como cantidad inicial, calcula el consumo
// (inicial - contado) y deja el inventario en la cantidad contada.
// Registrar y corregir son operaciones separadas a propósito: el alta rechaza
// duplicados por (producto, sede, fecha) y la corrección sobreescribe
// recalculando desde el snapshot inicial ORIGINAL, nunca desde uno nuevo.
type DailyCountUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	countRepo    repository.DailyCountRepository // lecturas fuera de tx
}

// NewDailyCountUseCase construye el caso de uso.
func NewDailyCountUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	countRepo repository.DailyCountRepository,
) *DailyCountUseCase {
	return &DailyCountUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		countRepo:    countRepo,
	}
}

// RecordCount registra el conteo del día. Exige que exista registro de
// inventario para el par (producto, sede) y rechaza un segundo conteo para la
// misma fecha con ErrDuplicateCount. Un consumo negativo (se contó más de lo
// registrado) se persiste sin error: señala entrada no registrada o error de
// conteo y lo interpretan los consumidores de reportes.
func (uc *DailyCountUseCase) RecordCount(ctx context.Context, actor Actor, in RecordCountInput) (*entity.DailyCount, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !actor.CanActOnLocation(in.LocationID) {
		return nil, domain.ErrForbidden
	}
	if product, err := uc.productRepo.GetByID(in.ProductID); err != nil {
		return nil, err
	} else if product == nil {
		return nil, domain.ErrNotFound
	}
	loc, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if !loc.IsActive {
		return nil, fmt.Errorf("%w: sede %s", domain.ErrInactiveResource, loc.Name)
	}

	countDate := domstock.DateOnly(in.CountDate)
	now := time.Now()
	count := &entity.DailyCount{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		CountDate:       countDate,
		CountedQuantity: in.CountedQuantity,
		CreatedBy:       actor.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txRepo repository.StockTransactionRepository,
		countRepo repository.DailyCountRepository,
	) error {
		existing, err := countRepo.GetByKey(ctx, in.ProductID, in.LocationID, countDate)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateCount
		}
		inv, err := invRepo.Get(ctx, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		if inv == nil {
			// El producto nunca se movió en esta sede: no hay nada que contar
			return domain.ErrNotFound
		}
		locked, err := invRepo.GetForUpdate(ctx, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		count.OpeningQuantity = locked.Quantity
		count.CalculatedUsage = domstock.Usage(locked.Quantity, in.CountedQuantity)
		if err := countRepo.Create(ctx, count); err != nil {
			return err
		}
		// El inventario queda en lo físicamente contado
		locked.Quantity = in.CountedQuantity
		locked.UpdatedAt = now
		if err := invRepo.Upsert(ctx, locked); err != nil {
			return err
		}
		if count.CalculatedUsage > 0 {
			usageTx := &entity.StockTransaction{
				ID:             uuid.New().String(),
				Type:           entity.TransactionTypeDailyUsage,
				ProductID:      in.ProductID,
				FromLocationID: &in.LocationID,
				Quantity:       -count.CalculatedUsage,
				ReferenceID:    &count.ID,
				Notes:          fmt.Sprintf("consumo diario %s", countDate.Format("2006-01-02")),
				CreatedBy:      actor.UserID,
				CreatedAt:      now,
			}
			return txRepo.Create(ctx, usageTx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return count, nil
}

// UpdateCount corrige un conteo ya registrado. El consumo se recalcula desde
// el snapshot inicial original (auditable); el inventario queda en la nueva
// cantidad contada y la diferencia de consumo se refleja en una transacción
// daily_usage_adjustment.
func (uc *DailyCountUseCase) UpdateCount(ctx context.Context, actor Actor, countID string, newCounted int64) (*entity.DailyCount, error) {
	if countID == "" {
		return nil, domain.ErrInvalidInput
	}
	if newCounted < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	count, err := uc.countRepo.GetByID(ctx, countID)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanActOnLocation(count.LocationID) {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txRepo repository.StockTransactionRepository,
		countRepo repository.DailyCountRepository,
	) error {
		// El lock de la fila de inventario serializa correcciones concurrentes
		// del mismo conteo; el consumo previo se relee ya dentro de la tx.
		locked, err := invRepo.GetForUpdate(ctx, count.ProductID, count.LocationID)
		if err != nil {
			return err
		}
		fresh, err := countRepo.GetByID(ctx, countID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return domain.ErrNotFound
		}
		oldUsage := fresh.CalculatedUsage
		count = fresh
		count.CountedQuantity = newCounted
		count.CalculatedUsage = domstock.Usage(count.OpeningQuantity, newCounted)
		count.UpdatedAt = now
		if err := countRepo.Update(ctx, count); err != nil {
			return err
		}
		locked.Quantity = newCounted
		locked.UpdatedAt = now
		if err := invRepo.Upsert(ctx, locked); err != nil {
			return err
		}
		usageDiff := count.CalculatedUsage - oldUsage
		if usageDiff != 0 {
			adjTx := &entity.StockTransaction{
				ID:             uuid.New().String(),
				Type:           entity.TransactionTypeDailyUsageAdjustment,
				ProductID:      count.ProductID,
				FromLocationID: &count.LocationID,
				Quantity:       -usageDiff,
				ReferenceID:    &count.ID,
				Notes:          fmt.Sprintf("corrección de conteo %s", count.CountDate.Format("2006-01-02")),
				CreatedBy:      actor.UserID,
				CreatedAt:      now,
			}
			return txRepo.Create(ctx, adjTx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return count, nil
}

// ListCounts consulta conteos con filtros y paginación.
func (uc *DailyCountUseCase) ListCounts(ctx context.Context, filter repository.DailyCountFilter) ([]*entity.DailyCount, int, error) {
	return uc.countRepo.List(ctx, filter)
}

// UsageSummary consumo agregado por producto en un rango de fechas.
func (uc *DailyCountUseCase) UsageSummary(ctx context.Context, locationID string, start, end time.Time) ([]repository.UsageSummaryRow, error) {
	return uc.countRepo.UsageSummary(ctx, locationID, domstock.DateOnly(start), domstock.DateOnly(end))
}
