package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas para reportes y dashboard. Solo lectura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetLowStockItems filas en o bajo punto de reorden, con proveedor y consumo
// diario promedio de los últimos usageWindowDays días. Sin sede, considera solo
// bodegas (el destino de las compras).
func (r *ReportRepo) GetLowStockItems(ctx context.Context, locationID string, usageWindowDays int) ([]repository.LowStockItem, error) {
	if usageWindowDays <= 0 {
		usageWindowDays = 30
	}
	args := []any{usageWindowDays}
	cond := "l.type = '" + entity.LocationTypeWarehouse + "'"
	if locationID != "" {
		args = append(args, locationID)
		cond = "i.location_id = $2"
	}
	query := `
		SELECT i.product_id, p.sku, p.name, i.location_id, l.name,
		       p.supplier_id, s.name, i.quantity, p.reorder_point, p.unit_price,
		       COALESCE(u.avg_daily, 0)
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN locations l ON l.id = i.location_id
		JOIN suppliers s ON s.id = p.supplier_id
		LEFT JOIN LATERAL (
			SELECT SUM(GREATEST(dc.calculated_usage, 0))::float / $1 AS avg_daily
			FROM daily_counts dc
			WHERE dc.product_id = i.product_id
			  AND dc.count_date >= CURRENT_DATE - $1::int
		) u ON true
		WHERE p.is_active AND l.is_active
		  AND p.reorder_point > 0 AND i.quantity <= p.reorder_point
		  AND ` + cond + `
		ORDER BY s.name, p.sku`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()

	var items []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.LocationID, &it.LocationName,
			&it.SupplierID, &it.SupplierName, &it.Quantity, &it.ReorderPoint, &it.UnitPrice, &it.AvgDailyUsage); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetStockSummary totales de inventario por sede, con valoración a precio de compra.
func (r *ReportRepo) GetStockSummary(ctx context.Context, locationID string) ([]repository.StockSummaryRow, error) {
	args := []any{}
	cond := "l.is_active"
	if locationID != "" {
		args = append(args, locationID)
		cond += " AND l.id = $1"
	}
	query := `
		SELECT l.id, l.name,
		       COUNT(i.product_id),
		       COALESCE(SUM(i.quantity), 0),
		       COUNT(*) FILTER (WHERE p.reorder_point > 0 AND i.quantity <= p.reorder_point),
		       COALESCE(SUM(i.quantity * p.unit_price), 0)
		FROM locations l
		LEFT JOIN inventory i ON i.location_id = l.id
		LEFT JOIN products p ON p.id = i.product_id AND p.is_active
		WHERE ` + cond + `
		GROUP BY l.id, l.name
		ORDER BY l.name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	defer rows.Close()

	var out []repository.StockSummaryRow
	for rows.Next() {
		var row repository.StockSummaryRow
		if err := rows.Scan(&row.LocationID, &row.LocationName, &row.TotalProducts,
			&row.TotalQuantity, &row.LowStockCount, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetUsageTrend consumo total por fecha en [start, end]. Los consumos negativos
// no aportan a la serie.
func (r *ReportRepo) GetUsageTrend(ctx context.Context, locationID string, start, end time.Time) ([]repository.UsageTrendPoint, error) {
	args := []any{start, end}
	cond := "count_date BETWEEN $1 AND $2"
	if locationID != "" {
		args = append(args, locationID)
		cond += " AND location_id = $3"
	}
	query := `
		SELECT count_date, COALESCE(SUM(GREATEST(calculated_usage, 0)), 0)
		FROM daily_counts
		WHERE ` + cond + `
		GROUP BY count_date
		ORDER BY count_date`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("usage trend: %w", err)
	}
	defer rows.Close()

	var out []repository.UsageTrendPoint
	for rows.Next() {
		var p repository.UsageTrendPoint
		if err := rows.Scan(&p.Date, &p.TotalUsage); err != nil {
			return nil, fmt.Errorf("scan usage trend: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetTopProducts productos con mayor consumo desde since.
func (r *ReportRepo) GetTopProducts(ctx context.Context, locationID string, since time.Time, limit int) ([]repository.TopProductRow, error) {
	if limit <= 0 {
		limit = 5
	}
	args := []any{since}
	cond := "dc.count_date >= $1"
	if locationID != "" {
		args = append(args, locationID)
		cond += " AND dc.location_id = $2"
	}
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT dc.product_id, p.name, p.sku, COALESCE(SUM(GREATEST(dc.calculated_usage, 0)), 0) AS total_usage
		FROM daily_counts dc
		JOIN products p ON p.id = dc.product_id
		WHERE %s
		GROUP BY dc.product_id, p.name, p.sku
		ORDER BY total_usage DESC
		LIMIT $%d`, cond, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.SKU, &row.TotalUsage); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
