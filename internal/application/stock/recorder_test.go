package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jortega/stock-management-api/internal/application/stock"
	"github.com/jortega/stock-management-api/internal/domain"
	"github.com/jortega/stock-management-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del registro de transacciones de stock: entrada en bodega, traslado
// entre sedes y ajuste manual. Verifican el escenario completo extremo a
// extremo contra fakes en memoria: cantidades resultantes, fila de transacción
// registrada y reglas de negocio (solo bodega recibe entradas, el traslado no
// puede dejar la sede origen en negativo, el total entre sedes se conserva).
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_EntradaEnBodega(t *testing.T) {
	f := newFixture()

	record, err := f.recorder.StockIn(context.Background(), adminActor(), appstock.StockInInput{
		ProductID:  testProductID,
		LocationID: testWarehouseID,
		Quantity:   50,
		SupplierID: testSupplierID,
		Notes:      "compra semanal",
	})

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, entity.TransactionTypeStockIn, record.Type)
	assert.Equal(t, int64(50), record.Quantity)
	require.NotNil(t, record.ToLocationID)
	assert.Equal(t, testWarehouseID, *record.ToLocationID)
	assert.Nil(t, record.FromLocationID, "la entrada no tiene sede origen")
	require.NotNil(t, record.SupplierID)
	assert.Equal(t, testSupplierID, *record.SupplierID)

	assert.Equal(t, int64(50), f.invRepo.quantity(testProductID, testWarehouseID),
		"la entrada debe crear la fila de inventario de forma perezosa")
	assert.Len(t, f.txRepo.created, 1)
}

func TestStockIn_RechazaTienda(t *testing.T) {
	f := newFixture()

	_, err := f.recorder.StockIn(context.Background(), adminActor(), appstock.StockInInput{
		ProductID:  testProductID,
		LocationID: testStoreID,
		Quantity:   10,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWarehouseOnly, "solo sedes tipo warehouse reciben entradas")
	assert.Zero(t, f.invRepo.quantity(testProductID, testStoreID))
	assert.Empty(t, f.txRepo.created, "una entrada rechazada no deja transacción")
}

func TestStockIn_CantidadInvalida(t *testing.T) {
	f := newFixture()

	for _, qty := range []int64{0, -5} {
		_, err := f.recorder.StockIn(context.Background(), adminActor(), appstock.StockInInput{
			ProductID:  testProductID,
			LocationID: testWarehouseID,
			Quantity:   qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestTransfer_EscenarioCompleto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Entrada de 50 en bodega, luego traslado de 20 a la tienda
	_, err := f.recorder.StockIn(ctx, adminActor(), appstock.StockInInput{
		ProductID:  testProductID,
		LocationID: testWarehouseID,
		Quantity:   50,
	})
	require.NoError(t, err)

	record, err := f.recorder.Transfer(ctx, adminActor(), appstock.TransferInput{
		ProductID:      testProductID,
		FromLocationID: testWarehouseID,
		ToLocationID:   testStoreID,
		Quantity:       20,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(30), f.invRepo.quantity(testProductID, testWarehouseID),
		"la bodega debe quedar en 50 - 20 = 30")
	assert.Equal(t, int64(20), f.invRepo.quantity(testProductID, testStoreID),
		"la tienda debe quedar en 20")

	// Una sola fila de transacción con ambas sedes
	assert.Equal(t, entity.TransactionTypeTransfer, record.Type)
	require.NotNil(t, record.FromLocationID)
	require.NotNil(t, record.ToLocationID)
	assert.Equal(t, testWarehouseID, *record.FromLocationID)
	assert.Equal(t, testStoreID, *record.ToLocationID)
	assert.Len(t, f.txRepo.ofType(entity.TransactionTypeTransfer), 1)
}

func TestTransfer_StockInsuficiente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.recorder.StockIn(ctx, adminActor(), appstock.StockInInput{
		ProductID:  testProductID,
		LocationID: testWarehouseID,
		Quantity:   10,
	})
	require.NoError(t, err)

	_, err = f.recorder.Transfer(ctx, adminActor(), appstock.TransferInput{
		ProductID:      testProductID,
		FromLocationID: testWarehouseID,
		ToLocationID:   testStoreID,
		Quantity:       15,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), f.invRepo.quantity(testProductID, testWarehouseID),
		"un traslado rechazado no debe tocar el inventario")
	assert.Zero(t, f.invRepo.quantity(testProductID, testStoreID))
}

func TestTransfer_ConservaElTotal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.recorder.StockIn(ctx, adminActor(), appstock.StockInInput{
		ProductID:  testProductID,
		LocationID: testWarehouseID,
		Quantity:   40,
	})
	require.NoError(t, err)

	totalBefore := f.invRepo.quantity(testProductID, testWarehouseID) +
		f.invRepo.quantity(testProductID, testStoreID)

	_, err = f.recorder.Transfer(ctx, adminActor(), appstock.TransferInput{
		ProductID:      testProductID,
		FromLocationID: testWarehouseID,
		ToLocationID:   testStoreID,
		Quantity:       25,
	})
	require.NoError(t, err)

	totalAfter := f.invRepo.quantity(testProductID, testWarehouseID) +
		f.invRepo.quantity(testProductID, testStoreID)
	assert.Equal(t, totalBefore, totalAfter, "el traslado mueve stock, no lo crea ni destruye")
}

func TestTransfer_MismaSede(t *testing.T) {
	f := newFixture()

	_, err := f.recorder.Transfer(context.Background(), adminActor(), appstock.TransferInput{
		ProductID:      testProductID,
		FromLocationID: testWarehouseID,
		ToLocationID:   testWarehouseID,
		Quantity:       5,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput, "origen y destino deben ser sedes distintas")
}

func TestAdjust_FijaCantidadAbsoluta(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.recorder.StockIn(ctx, adminActor(), appstock.StockInInput{
		ProductID:  testProductID,
		LocationID: testWarehouseID,
		Quantity:   30,
	})
	require.NoError(t, err)

	record, err := f.recorder.Adjust(ctx, adminActor(), appstock.AdjustmentInput{
		ProductID:   testProductID,
		LocationID:  testWarehouseID,
		NewQuantity: 22,
		Reason:      "merma por vencimiento",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(22), f.invRepo.quantity(testProductID, testWarehouseID))
	assert.Equal(t, entity.TransactionTypeAdjustment, record.Type)
	assert.Equal(t, int64(-8), record.Quantity, "la transacción guarda el delta con signo: 22 - 30 = -8")
	assert.Equal(t, "merma por vencimiento", record.Notes)
}

func TestAdjust_RechazaCantidadNegativa(t *testing.T) {
	f := newFixture()

	_, err := f.recorder.Adjust(context.Background(), adminActor(), appstock.AdjustmentInput{
		ProductID:   testProductID,
		LocationID:  testWarehouseID,
		NewQuantity: -1,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "el inventario registrado nunca queda bajo cero")
}

func TestRecorder_StaffSoloSuSede(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actor := staffActor(testStoreID)

	_, err := f.recorder.StockIn(ctx, actor, appstock.StockInInput{
		ProductID:  testProductID,
		LocationID: testWarehouseID,
		Quantity:   10,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "staff no puede operar sobre una sede ajena")

	_, err = f.recorder.Transfer(ctx, actor, appstock.TransferInput{
		ProductID:      testProductID,
		FromLocationID: testWarehouseID,
		ToLocationID:   testStoreID,
		Quantity:       5,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "la autorización se evalúa sobre la sede origen")
}
