package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jortega/stock-management-api/internal/application/dto"
	"github.com/jortega/stock-management-api/internal/domain/repository"
	domstock "github.com/jortega/stock-management-api/internal/domain/stock"
)

// Cache puerto de caché para respuestas de dashboard. Get devuelve false
// cuando la clave no existe; los errores de la caché no deben tumbar la
// consulta, el llamador decide si los ignora.
type Cache interface {
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// DashboardUseCase agrega las métricas del panel principal. Las consultas
// independientes corren en paralelo y el resultado completo se cachea por sede.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	cache      Cache
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository, cache Cache) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, cache: cache}
}

// DashboardSummary respuesta combinada del dashboard.
type DashboardSummary struct {
	StockSummary  []dto.StockSummaryDTO    `json:"stock_summary"`
	LowStockCount int                      `json:"low_stock_count"`
	UsageTrend    []dto.UsageTrendPointDTO `json:"usage_trend"`
	TopProducts   []dto.TopProductDTO      `json:"top_products"`
	GeneratedAt   time.Time                `json:"generated_at"`
}

const (
	trendDays      = 7
	topProductDays = 30
	topProductMax  = 5
)

// Summary métricas combinadas de una sede (o de todas si locationID es vacío).
func (uc *DashboardUseCase) Summary(ctx context.Context, locationID string) (*DashboardSummary, error) {
	cacheKey := fmt.Sprintf("dashboard:summary:%s", locationID)
	if uc.cache != nil {
		var cached DashboardSummary
		if ok, err := uc.cache.Get(ctx, cacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	today := domstock.DateOnly(time.Now())
	summary := &DashboardSummary{GeneratedAt: time.Now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := uc.reportRepo.GetStockSummary(gctx, locationID)
		if err != nil {
			return err
		}
		summary.StockSummary = make([]dto.StockSummaryDTO, 0, len(rows))
		for _, r := range rows {
			summary.LowStockCount += r.LowStockCount
			summary.StockSummary = append(summary.StockSummary, dto.StockSummaryDTO{
				LocationID:    r.LocationID,
				LocationName:  r.LocationName,
				TotalProducts: r.TotalProducts,
				TotalQuantity: r.TotalQuantity,
				LowStockCount: r.LowStockCount,
				TotalValue:    r.TotalValue,
			})
		}
		return nil
	})
	g.Go(func() error {
		points, err := uc.reportRepo.GetUsageTrend(gctx, locationID, today.AddDate(0, 0, -(trendDays-1)), today)
		if err != nil {
			return err
		}
		summary.UsageTrend = fillTrend(points, today, trendDays)
		return nil
	})
	g.Go(func() error {
		rows, err := uc.reportRepo.GetTopProducts(gctx, locationID, today.AddDate(0, 0, -topProductDays), topProductMax)
		if err != nil {
			return err
		}
		summary.TopProducts = make([]dto.TopProductDTO, 0, len(rows))
		for _, r := range rows {
			summary.TopProducts = append(summary.TopProducts, dto.TopProductDTO{
				ProductID:   r.ProductID,
				ProductName: r.ProductName,
				SKU:         r.SKU,
				TotalUsage:  r.TotalUsage,
			})
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		// La caché es best effort, un fallo no invalida la respuesta.
		_ = uc.cache.Set(ctx, cacheKey, summary)
	}
	return summary, nil
}

// UsageTrend serie diaria de consumo para los últimos days días, con ceros
// en las fechas sin conteos.
func (uc *DashboardUseCase) UsageTrend(ctx context.Context, locationID string, days int) ([]dto.UsageTrendPointDTO, error) {
	if days <= 0 {
		days = trendDays
	}
	today := domstock.DateOnly(time.Now())
	points, err := uc.reportRepo.GetUsageTrend(ctx, locationID, today.AddDate(0, 0, -(days-1)), today)
	if err != nil {
		return nil, err
	}
	return fillTrend(points, today, days), nil
}

// TopProducts productos con mayor consumo en los últimos days días.
func (uc *DashboardUseCase) TopProducts(ctx context.Context, locationID string, days, limit int) ([]dto.TopProductDTO, error) {
	if days <= 0 {
		days = topProductDays
	}
	if limit <= 0 || limit > 50 {
		limit = topProductMax
	}
	today := domstock.DateOnly(time.Now())
	rows, err := uc.reportRepo.GetTopProducts(ctx, locationID, today.AddDate(0, 0, -days), limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			SKU:         r.SKU,
			TotalUsage:  r.TotalUsage,
		})
	}
	return out, nil
}

// fillTrend expande la serie de la base a un punto por día, rellenando con
// cero las fechas sin datos.
func fillTrend(points []repository.UsageTrendPoint, end time.Time, days int) []dto.UsageTrendPointDTO {
	byDate := make(map[string]int64, len(points))
	for _, p := range points {
		byDate[p.Date.UTC().Format("2006-01-02")] += p.TotalUsage
	}
	out := make([]dto.UsageTrendPointDTO, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := end.AddDate(0, 0, -i).Format("2006-01-02")
		out = append(out, dto.UsageTrendPointDTO{Date: d, Usage: byDate[d]})
	}
	return out
}
