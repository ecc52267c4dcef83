package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jortega/stock-management-api/internal/application/stock"
	"github.com/jortega/stock-management-api/internal/domain/repository"
)

// fakeReportRepo devuelve filas de bajo stock prearmadas.
type fakeReportRepo struct {
	lowStock []repository.LowStockItem
}

func (r *fakeReportRepo) GetLowStockItems(_ context.Context, _ string, _ int) ([]repository.LowStockItem, error) {
	return r.lowStock, nil
}

func (r *fakeReportRepo) GetStockSummary(_ context.Context, _ string) ([]repository.StockSummaryRow, error) {
	return nil, nil
}

func (r *fakeReportRepo) GetUsageTrend(_ context.Context, _ string, _, _ time.Time) ([]repository.UsageTrendPoint, error) {
	return nil, nil
}

func (r *fakeReportRepo) GetTopProducts(_ context.Context, _ string, _ time.Time, _ int) ([]repository.TopProductRow, error) {
	return nil, nil
}

func lowStockItem(supplierID, supplierName, sku string, qty, reorder int64, avgUsage float64, price string) repository.LowStockItem {
	return repository.LowStockItem{
		ProductID:     "prod-" + sku,
		SKU:           sku,
		ProductName:   "Producto " + sku,
		SupplierID:    supplierID,
		SupplierName:  supplierName,
		Quantity:      qty,
		ReorderPoint:  reorder,
		UnitPrice:     decimal.RequireFromString(price),
		AvgDailyUsage: avgUsage,
	}
}

func TestGeneratePurchaseSuggestions_ReglaMinima(t *testing.T) {
	// Sin historial de consumo la cantidad sugerida es reorden - stock actual
	repo := &fakeReportRepo{lowStock: []repository.LowStockItem{
		lowStockItem("sup-1", "Distribuidora Norte", "CAF-250", 4, 10, 0, "15.50"),
	}}
	uc := appstock.NewSuggestionUseCase(repo, 30, 30)

	groups, err := uc.GeneratePurchaseSuggestions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Products, 1)

	p := groups[0].Products[0]
	assert.Equal(t, int64(6), p.SuggestedQuantity, "reorden 10 - stock 4 = 6")
	assert.Equal(t, "93.00", p.EstimatedCost.StringFixed(2), "6 * 15.50")
	assert.Equal(t, "93.00", groups[0].EstimatedTotal.StringFixed(2))
}

func TestGeneratePurchaseSuggestions_CoberturaGanaAlDeficit(t *testing.T) {
	// Consumo diario 0.5 con cobertura 30 días pide 15, más que el déficit de 6
	repo := &fakeReportRepo{lowStock: []repository.LowStockItem{
		lowStockItem("sup-1", "Distribuidora Norte", "CAF-250", 4, 10, 0.5, "15.50"),
	}}
	uc := appstock.NewSuggestionUseCase(repo, 30, 30)

	groups, err := uc.GeneratePurchaseSuggestions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(15), groups[0].Products[0].SuggestedQuantity)
}

func TestGeneratePurchaseSuggestions_AgrupaPorProveedorOrdenado(t *testing.T) {
	repo := &fakeReportRepo{lowStock: []repository.LowStockItem{
		lowStockItem("sup-2", "Lácteos del Valle", "LEC-001", 2, 8, 0, "3.20"),
		lowStockItem("sup-1", "Distribuidora Norte", "CAF-500", 1, 5, 0, "28.00"),
		lowStockItem("sup-1", "Distribuidora Norte", "CAF-250", 4, 10, 0, "15.50"),
	}}
	uc := appstock.NewSuggestionUseCase(repo, 30, 30)

	groups, err := uc.GeneratePurchaseSuggestions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Proveedores por nombre, productos por SKU
	assert.Equal(t, "Distribuidora Norte", groups[0].SupplierName)
	require.Len(t, groups[0].Products, 2)
	assert.Equal(t, "CAF-250", groups[0].Products[0].SKU)
	assert.Equal(t, "CAF-500", groups[0].Products[1].SKU)
	assert.Equal(t, "Lácteos del Valle", groups[1].SupplierName)

	// 6*15.50 + 4*28.00 = 93.00 + 112.00
	assert.Equal(t, "205.00", groups[0].EstimatedTotal.StringFixed(2))
}

func TestGeneratePurchaseSuggestions_Determinista(t *testing.T) {
	repo := &fakeReportRepo{lowStock: []repository.LowStockItem{
		lowStockItem("sup-3", "Abarrotes Sur", "ARR-001", 0, 12, 1.2, "2.10"),
		lowStockItem("sup-1", "Distribuidora Norte", "CAF-250", 4, 10, 0, "15.50"),
		lowStockItem("sup-2", "Lácteos del Valle", "LEC-001", 2, 8, 0.3, "3.20"),
	}}
	uc := appstock.NewSuggestionUseCase(repo, 30, 30)
	ctx := context.Background()

	first, err := uc.GeneratePurchaseSuggestions(ctx, "")
	require.NoError(t, err)
	second, err := uc.GeneratePurchaseSuggestions(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, first, second, "sobre el mismo snapshot el resultado es idéntico")
}

func TestGeneratePurchaseSuggestions_SinFilasDevuelveVacio(t *testing.T) {
	uc := appstock.NewSuggestionUseCase(&fakeReportRepo{}, 30, 30)

	groups, err := uc.GeneratePurchaseSuggestions(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
