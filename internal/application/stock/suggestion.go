package stock

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortega/stock-management-api/internal/application/dto"
	"github.com/jortega/stock-management-api/internal/domain/repository"
	domstock "github.com/jortega/stock-management-api/internal/domain/stock"
)

// SuggestionUseCase genera la lista de sugerencias de compra: productos en o
// bajo su punto de reorden, con cantidad sugerida, agrupados por proveedor.
// Lectura pura: recalcula en cada invocación y no persiste nada; sobre un
// snapshot de inventario sin cambios el resultado es idéntico byte a byte.
type SuggestionUseCase struct {
	reportRepo      repository.ReportRepository
	coverDays       int // días de cobertura de la cantidad sugerida
	usageWindowDays int // ventana del promedio de consumo diario
}

// NewSuggestionUseCase construye el caso de uso.
func NewSuggestionUseCase(reportRepo repository.ReportRepository, coverDays, usageWindowDays int) *SuggestionUseCase {
	if coverDays <= 0 {
		coverDays = 30
	}
	if usageWindowDays <= 0 {
		usageWindowDays = 30
	}
	return &SuggestionUseCase{
		reportRepo:      reportRepo,
		coverDays:       coverDays,
		usageWindowDays: usageWindowDays,
	}
}

// GeneratePurchaseSuggestions arma los grupos por proveedor. locationID vacío
// considera las sedes tipo warehouse (destino de las compras).
// Cantidad sugerida: max(reorden - stock, consumo_diario_promedio * cobertura);
// sin historial de consumo queda la regla mínima reorden - stock.
// Orden determinista: proveedores por nombre (luego ID) y productos por SKU.
func (uc *SuggestionUseCase) GeneratePurchaseSuggestions(ctx context.Context, locationID string) ([]dto.PurchaseSuggestionGroup, error) {
	items, err := uc.reportRepo.GetLowStockItems(ctx, locationID, uc.usageWindowDays)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.PurchaseSuggestionGroup{}, nil
	}

	bySupplier := make(map[string]*dto.PurchaseSuggestionGroup)
	for _, item := range items {
		if !domstock.BelowReorderPoint(item.Quantity, item.ReorderPoint) {
			continue
		}
		suggested := domstock.SuggestedQuantity(item.ReorderPoint, item.Quantity, item.AvgDailyUsage, uc.coverDays)
		estimated := item.UnitPrice.Mul(decimal.NewFromInt(suggested))

		group, ok := bySupplier[item.SupplierID]
		if !ok {
			group = &dto.PurchaseSuggestionGroup{
				SupplierID:     item.SupplierID,
				SupplierName:   item.SupplierName,
				EstimatedTotal: decimal.Zero,
			}
			bySupplier[item.SupplierID] = group
		}
		group.Products = append(group.Products, dto.PurchaseSuggestionProduct{
			ProductID:         item.ProductID,
			SKU:               item.SKU,
			ProductName:       item.ProductName,
			CurrentQuantity:   item.Quantity,
			ReorderPoint:      item.ReorderPoint,
			AvgDailyUsage:     item.AvgDailyUsage,
			SuggestedQuantity: suggested,
			UnitPrice:         item.UnitPrice,
			EstimatedCost:     estimated,
		})
		group.EstimatedTotal = group.EstimatedTotal.Add(estimated)
	}

	groups := make([]dto.PurchaseSuggestionGroup, 0, len(bySupplier))
	for _, g := range bySupplier {
		sort.Slice(g.Products, func(i, j int) bool {
			return g.Products[i].SKU < g.Products[j].SKU
		})
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].SupplierName != groups[j].SupplierName {
			return groups[i].SupplierName < groups[j].SupplierName
		}
		return groups[i].SupplierID < groups[j].SupplierID
	})
	return groups, nil
}

// RenderPurchaseOrderPDF exporta las sugerencias como órdenes de compra en PDF.
func (uc *SuggestionUseCase) RenderPurchaseOrderPDF(ctx context.Context, locationID string, gen PurchaseOrderPDFGenerator) ([]byte, error) {
	groups, err := uc.GeneratePurchaseSuggestions(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return gen.Render(groups, time.Now())
}
