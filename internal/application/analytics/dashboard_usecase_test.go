package analytics_test

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/stock-management-api/internal/application/analytics"
	"github.com/jortega/stock-management-api/internal/domain/repository"
	domstock "github.com/jortega/stock-management-api/internal/domain/stock"
)

// fakeReportRepo devuelve agregados prearmados y cuenta las invocaciones.
// El contador es atómico: las consultas del dashboard corren en paralelo.
type fakeReportRepo struct {
	summaryRows []repository.StockSummaryRow
	trendPoints []repository.UsageTrendPoint
	topRows     []repository.TopProductRow
	calls       atomic.Int64
}

func (r *fakeReportRepo) GetLowStockItems(_ context.Context, _ string, _ int) ([]repository.LowStockItem, error) {
	return nil, nil
}

func (r *fakeReportRepo) GetStockSummary(_ context.Context, _ string) ([]repository.StockSummaryRow, error) {
	r.calls.Add(1)
	return r.summaryRows, nil
}

func (r *fakeReportRepo) GetUsageTrend(_ context.Context, _ string, _, _ time.Time) ([]repository.UsageTrendPoint, error) {
	r.calls.Add(1)
	return r.trendPoints, nil
}

func (r *fakeReportRepo) GetTopProducts(_ context.Context, _ string, _ time.Time, _ int) ([]repository.TopProductRow, error) {
	r.calls.Add(1)
	return r.topRows, nil
}

// fakeCache caché en memoria con la misma serialización JSON que la de Redis.
type fakeCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, v any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (c *fakeCache) Set(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func TestSummary_AgregaYCachea(t *testing.T) {
	today := domstock.DateOnly(time.Now())
	repo := &fakeReportRepo{
		summaryRows: []repository.StockSummaryRow{
			{LocationID: "loc-1", LocationName: "Bodega Central", TotalProducts: 12, TotalQuantity: 340, LowStockCount: 3},
			{LocationID: "loc-2", LocationName: "Tienda Principal", TotalProducts: 9, TotalQuantity: 120, LowStockCount: 1},
		},
		trendPoints: []repository.UsageTrendPoint{
			{Date: today, TotalUsage: 8},
		},
		topRows: []repository.TopProductRow{
			{ProductID: "prod-1", ProductName: "Café molido 250g", SKU: "CAF-250", TotalUsage: 42},
		},
	}
	cache := newFakeCache()
	uc := analytics.NewDashboardUseCase(repo, cache)

	summary, err := uc.Summary(context.Background(), "")
	require.NoError(t, err)

	assert.Len(t, summary.StockSummary, 2)
	assert.Equal(t, 4, summary.LowStockCount, "suma los bajo-stock de todas las sedes")
	assert.Len(t, summary.UsageTrend, 7, "la serie cubre los últimos 7 días con ceros")
	assert.Equal(t, int64(8), summary.UsageTrend[6].Usage, "el último punto es hoy")
	assert.Len(t, summary.TopProducts, 1)
	assert.Equal(t, 1, cache.sets, "el resultado completo se cachea")

	// Segunda llamada: servida desde caché, sin tocar la base
	callsBefore := repo.calls.Load()
	cached, err := uc.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, callsBefore, repo.calls.Load(), "con caché caliente no se consulta la base")
	assert.Equal(t, summary.LowStockCount, cached.LowStockCount)
}

func TestUsageTrend_RellenaFechasSinDatos(t *testing.T) {
	today := domstock.DateOnly(time.Now())
	repo := &fakeReportRepo{
		trendPoints: []repository.UsageTrendPoint{
			{Date: today.AddDate(0, 0, -2), TotalUsage: 5},
			{Date: today, TotalUsage: 3},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, newFakeCache())

	serie, err := uc.UsageTrend(context.Background(), "loc-1", 5)
	require.NoError(t, err)
	require.Len(t, serie, 5)

	assert.Equal(t, int64(0), serie[0].Usage)
	assert.Equal(t, int64(0), serie[1].Usage)
	assert.Equal(t, int64(5), serie[2].Usage)
	assert.Equal(t, int64(0), serie[3].Usage)
	assert.Equal(t, int64(3), serie[4].Usage)
	assert.Equal(t, today.Format("2006-01-02"), serie[4].Date, "la serie termina hoy")
}

func TestTopProducts_LimiteAcotado(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := analytics.NewDashboardUseCase(repo, newFakeCache())

	// Límites fuera de rango caen al default sin error
	_, err := uc.TopProducts(context.Background(), "", 0, 0)
	require.NoError(t, err)
	_, err = uc.TopProducts(context.Background(), "", 30, 500)
	require.NoError(t, err)
}
