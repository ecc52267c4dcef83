package analytics

import (
	"context"
	"time"

	"github.com/jortega/stock-management-api/internal/application/dto"
	"github.com/jortega/stock-management-api/internal/domain/repository"
	domstock "github.com/jortega/stock-management-api/internal/domain/stock"
)

// ReportUseCase reportes de solo lectura sobre inventario y consumo.
type ReportUseCase struct {
	reportRepo      repository.ReportRepository
	countRepo       repository.DailyCountRepository
	usageWindowDays int
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository, countRepo repository.DailyCountRepository, usageWindowDays int) *ReportUseCase {
	if usageWindowDays <= 0 {
		usageWindowDays = 30
	}
	return &ReportUseCase{reportRepo: reportRepo, countRepo: countRepo, usageWindowDays: usageWindowDays}
}

// LowStock productos en o bajo su punto de reorden, con el faltante.
func (uc *ReportUseCase) LowStock(ctx context.Context, locationID string) ([]dto.LowStockItemDTO, error) {
	items, err := uc.reportRepo.GetLowStockItems(ctx, locationID, uc.usageWindowDays)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.LowStockItemDTO{
			ProductID:    item.ProductID,
			SKU:          item.SKU,
			ProductName:  item.ProductName,
			LocationID:   item.LocationID,
			LocationName: item.LocationName,
			Quantity:     item.Quantity,
			ReorderPoint: item.ReorderPoint,
			Shortage:     item.ReorderPoint - item.Quantity,
		})
	}
	return out, nil
}

// StockSummary totales de inventario por sede, incluida la valoración.
func (uc *ReportUseCase) StockSummary(ctx context.Context, locationID string) ([]dto.StockSummaryDTO, error) {
	rows, err := uc.reportRepo.GetStockSummary(ctx, locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockSummaryDTO{
			LocationID:    r.LocationID,
			LocationName:  r.LocationName,
			TotalProducts: r.TotalProducts,
			TotalQuantity: r.TotalQuantity,
			LowStockCount: r.LowStockCount,
			TotalValue:    r.TotalValue,
		})
	}
	return out, nil
}

// UsageAnalysis consumo por producto en los últimos days días, con bucket de
// tendencia simple (>10/día alto, >5/día medio, resto bajo).
func (uc *ReportUseCase) UsageAnalysis(ctx context.Context, locationID string, days int) ([]dto.UsageAnalysisDTO, error) {
	if days <= 0 {
		days = uc.usageWindowDays
	}
	end := domstock.DateOnly(time.Now())
	start := end.AddDate(0, 0, -days)
	rows, err := uc.countRepo.UsageSummary(ctx, locationID, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsageAnalysisDTO, 0, len(rows))
	for _, r := range rows {
		trend := "low"
		switch {
		case r.AvgDailyUsage > 10:
			trend = "high"
		case r.AvgDailyUsage > 5:
			trend = "medium"
		}
		out = append(out, dto.UsageAnalysisDTO{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			SKU:           r.SKU,
			TotalUsage:    r.TotalUsage,
			AvgDailyUsage: r.AvgDailyUsage,
			CountDays:     r.CountDays,
			UsageTrend:    trend,
		})
	}
	return out, nil
}
