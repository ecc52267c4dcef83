package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jortega/stock-management-api/internal/application/stock"
	"github.com/jortega/stock-management-api/internal/domain"
	"github.com/jortega/stock-management-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la conciliación de conteos diarios. El contrato central:
//
//	consumo = cantidad_inicial - cantidad_contada
//
// El inventario queda en lo contado, el consumo positivo genera una
// transacción daily_usage, el negativo se persiste sin transacción, y la
// corrección de un conteo recalcula desde el snapshot inicial ORIGINAL.
// ──────────────────────────────────────────────────────────────────────────────

var testCountDate = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

// seedInventory deja el par (producto, tienda) con la cantidad dada vía
// entrada en bodega + traslado, como ocurre en operación real.
func seedInventory(t *testing.T, f *fixture, qty int64) {
	t.Helper()
	ctx := context.Background()
	_, err := f.recorder.StockIn(ctx, adminActor(), appstock.StockInInput{
		ProductID:  testProductID,
		LocationID: testWarehouseID,
		Quantity:   qty,
	})
	require.NoError(t, err)
	_, err = f.recorder.Transfer(ctx, adminActor(), appstock.TransferInput{
		ProductID:      testProductID,
		FromLocationID: testWarehouseID,
		ToLocationID:   testStoreID,
		Quantity:       qty,
	})
	require.NoError(t, err)
}

func TestRecordCount_ConsumoPositivo(t *testing.T) {
	f := newFixture()
	seedInventory(t, f, 20)

	count, err := f.counts.RecordCount(context.Background(), adminActor(), appstock.RecordCountInput{
		ProductID:       testProductID,
		LocationID:      testStoreID,
		CountDate:       testCountDate,
		CountedQuantity: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20), count.OpeningQuantity)
	assert.Equal(t, int64(5), count.CalculatedUsage, "consumo = 20 - 15 = 5")
	assert.Equal(t, int64(15), f.invRepo.quantity(testProductID, testStoreID),
		"el inventario queda en lo físicamente contado")

	usageTxs := f.txRepo.ofType(entity.TransactionTypeDailyUsage)
	require.Len(t, usageTxs, 1, "el consumo positivo genera una transacción daily_usage")
	assert.Equal(t, int64(-5), usageTxs[0].Quantity)
	require.NotNil(t, usageTxs[0].ReferenceID)
	assert.Equal(t, count.ID, *usageTxs[0].ReferenceID)
}

func TestRecordCount_ConsumoNegativoSePersiste(t *testing.T) {
	f := newFixture()
	seedInventory(t, f, 20)

	count, err := f.counts.RecordCount(context.Background(), adminActor(), appstock.RecordCountInput{
		ProductID:       testProductID,
		LocationID:      testStoreID,
		CountDate:       testCountDate,
		CountedQuantity: 25,
	})
	require.NoError(t, err, "contar más de lo registrado no es error: señala entrada no registrada")

	assert.Equal(t, int64(-5), count.CalculatedUsage, "consumo = 20 - 25 = -5, se guarda tal cual")
	assert.Equal(t, int64(25), f.invRepo.quantity(testProductID, testStoreID))
	assert.Empty(t, f.txRepo.ofType(entity.TransactionTypeDailyUsage),
		"el consumo no positivo no genera transacción de consumo")
}

func TestRecordCount_DuplicadoMismaFecha(t *testing.T) {
	f := newFixture()
	seedInventory(t, f, 20)
	ctx := context.Background()

	in := appstock.RecordCountInput{
		ProductID:       testProductID,
		LocationID:      testStoreID,
		CountDate:       testCountDate,
		CountedQuantity: 18,
	}
	_, err := f.counts.RecordCount(ctx, adminActor(), in)
	require.NoError(t, err)

	in.CountedQuantity = 17
	_, err = f.counts.RecordCount(ctx, adminActor(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicateCount,
		"un segundo conteo para (producto, sede, fecha) se rechaza; corregir es otra operación")
}

func TestRecordCount_SinInventarioPrevio(t *testing.T) {
	f := newFixture()

	_, err := f.counts.RecordCount(context.Background(), adminActor(), appstock.RecordCountInput{
		ProductID:       testProductID,
		LocationID:      testStoreID,
		CountDate:       testCountDate,
		CountedQuantity: 5,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound,
		"sin registro de inventario no hay cantidad inicial que conciliar")
}

func TestRecordCount_NormalizaFecha(t *testing.T) {
	f := newFixture()
	seedInventory(t, f, 10)

	withTime := time.Date(2026, 8, 30, 14, 35, 12, 0, time.UTC)
	count, err := f.counts.RecordCount(context.Background(), adminActor(), appstock.RecordCountInput{
		ProductID:       testProductID,
		LocationID:      testStoreID,
		CountDate:       withTime,
		CountedQuantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, testCountDate, count.CountDate, "la fecha del conteo se guarda sin hora")
}

func TestUpdateCount_RecalculaDesdeSnapshotOriginal(t *testing.T) {
	f := newFixture()
	seedInventory(t, f, 20)
	ctx := context.Background()

	count, err := f.counts.RecordCount(ctx, adminActor(), appstock.RecordCountInput{
		ProductID:       testProductID,
		LocationID:      testStoreID,
		CountDate:       testCountDate,
		CountedQuantity: 15,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), count.CalculatedUsage)

	// Corrección: en realidad se contaron 12. El consumo se recalcula desde la
	// cantidad inicial original (20), no desde el inventario ya conciliado (15).
	updated, err := f.counts.UpdateCount(ctx, adminActor(), count.ID, 12)
	require.NoError(t, err)

	assert.Equal(t, int64(20), updated.OpeningQuantity, "la cantidad inicial original se preserva")
	assert.Equal(t, int64(12), updated.CountedQuantity)
	assert.Equal(t, int64(8), updated.CalculatedUsage, "consumo corregido = 20 - 12 = 8")
	assert.Equal(t, int64(12), f.invRepo.quantity(testProductID, testStoreID))

	adjTxs := f.txRepo.ofType(entity.TransactionTypeDailyUsageAdjustment)
	require.Len(t, adjTxs, 1)
	assert.Equal(t, int64(-3), adjTxs[0].Quantity, "la diferencia de consumo (8 - 5) se refleja con signo")
}

func TestUpdateCount_SinCambioDeConsumoNoGeneraAjuste(t *testing.T) {
	f := newFixture()
	seedInventory(t, f, 20)
	ctx := context.Background()

	count, err := f.counts.RecordCount(ctx, adminActor(), appstock.RecordCountInput{
		ProductID:       testProductID,
		LocationID:      testStoreID,
		CountDate:       testCountDate,
		CountedQuantity: 15,
	})
	require.NoError(t, err)

	_, err = f.counts.UpdateCount(ctx, adminActor(), count.ID, 15)
	require.NoError(t, err)
	assert.Empty(t, f.txRepo.ofType(entity.TransactionTypeDailyUsageAdjustment))
}

// staleCountRepo devuelve por fuera de la tx un consumo desactualizado, como
// pasaría si otra corrección concurrente se hubiera confirmado entre la
// lectura inicial y la transacción.
type staleCountRepo struct {
	*fakeCountRepo
	staleUsage int64
}

func (r *staleCountRepo) GetByID(ctx context.Context, id string) (*entity.DailyCount, error) {
	count, err := r.fakeCountRepo.GetByID(ctx, id)
	if count != nil {
		count.CalculatedUsage = r.staleUsage
	}
	return count, err
}

func TestUpdateCount_DiferenciaDesdeLoPersistidoEnTx(t *testing.T) {
	f := newFixture()
	seedInventory(t, f, 20)
	ctx := context.Background()

	count, err := f.counts.RecordCount(ctx, adminActor(), appstock.RecordCountInput{
		ProductID:       testProductID,
		LocationID:      testStoreID,
		CountDate:       testCountDate,
		CountedQuantity: 15,
	})
	require.NoError(t, err)

	// El caso de uso lee por fuera un consumo rancio (0); dentro de la tx el
	// almacenado real sigue siendo 5.
	stale := appstock.NewDailyCountUseCase(f.runner, f.products, f.locations,
		&staleCountRepo{fakeCountRepo: f.countRepo, staleUsage: 0})

	updated, err := stale.UpdateCount(ctx, adminActor(), count.ID, 12)
	require.NoError(t, err)
	require.Equal(t, int64(8), updated.CalculatedUsage)

	adjTxs := f.txRepo.ofType(entity.TransactionTypeDailyUsageAdjustment)
	require.Len(t, adjTxs, 1)
	assert.Equal(t, int64(-3), adjTxs[0].Quantity,
		"la diferencia se calcula contra el consumo releído dentro de la tx (8 - 5), no contra la lectura previa")
}

func TestUpdateCount_ConteoInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.counts.UpdateCount(context.Background(), adminActor(), "no-existe", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordCount_StaffSoloSuSede(t *testing.T) {
	f := newFixture()
	seedInventory(t, f, 20)

	_, err := f.counts.RecordCount(context.Background(), staffActor(testWarehouseID), appstock.RecordCountInput{
		ProductID:       testProductID,
		LocationID:      testStoreID,
		CountDate:       testCountDate,
		CountedQuantity: 15,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
