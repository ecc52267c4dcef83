package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jortega/stock-management-api/internal/domain"
	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
)

var _ repository.DailyCountRepository = (*DailyCountRepo)(nil)

// DailyCountRepo implementación de DailyCountRepository sobre PostgreSQL (usable con pool o tx).
// La tabla tiene UNIQUE (product_id, location_id, count_date).
type DailyCountRepo struct {
	q Querier
}

// NewDailyCountRepository construye el adaptador de conteos diarios. Pasar pool o tx (Querier).
func NewDailyCountRepository(q Querier) *DailyCountRepo {
	return &DailyCountRepo{q: q}
}

const countColumns = `id, product_id, location_id, count_date, opening_quantity, counted_quantity, calculated_usage, created_by, created_at, updated_at`

// Create inserta un conteo diario. El duplicado por (producto, sede, fecha) es conflicto.
func (r *DailyCountRepo) Create(ctx context.Context, count *entity.DailyCount) error {
	query := `
		INSERT INTO daily_counts (id, product_id, location_id, count_date, opening_quantity, counted_quantity, calculated_usage, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		count.ID, count.ProductID, count.LocationID, count.CountDate,
		count.OpeningQuantity, count.CountedQuantity, count.CalculatedUsage,
		count.CreatedBy, count.CreatedAt, count.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCount
		}
		return fmt.Errorf("insert daily count: %w", err)
	}
	return nil
}

// GetByID obtiene un conteo por ID.
func (r *DailyCountRepo) GetByID(ctx context.Context, id string) (*entity.DailyCount, error) {
	query := `SELECT ` + countColumns + ` FROM daily_counts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByKey busca el conteo único por (producto, sede, fecha).
func (r *DailyCountRepo) GetByKey(ctx context.Context, productID, locationID string, date time.Time) (*entity.DailyCount, error) {
	query := `SELECT ` + countColumns + ` FROM daily_counts WHERE product_id = $1 AND location_id = $2 AND count_date = $3`
	return r.scanOne(r.q.QueryRow(ctx, query, productID, locationID, date))
}

// Update sobreescribe la cantidad contada y el consumo recalculado.
// OpeningQuantity no se toca: es el snapshot original del primer conteo.
func (r *DailyCountRepo) Update(ctx context.Context, count *entity.DailyCount) error {
	query := `
		UPDATE daily_counts SET counted_quantity = $2, calculated_usage = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, count.ID, count.CountedQuantity, count.CalculatedUsage, count.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update daily count: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List consulta conteos con filtros y paginación; devuelve también el total.
func (r *DailyCountRepo) List(ctx context.Context, filter repository.DailyCountFilter) ([]*entity.DailyCount, int, error) {
	where := []string{"1=1"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.LocationID != "" {
		where = append(where, "location_id = "+arg(filter.LocationID))
	}
	if filter.ProductID != "" {
		where = append(where, "product_id = "+arg(filter.ProductID))
	}
	if filter.StartDate != nil {
		where = append(where, "count_date >= "+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		where = append(where, "count_date <= "+arg(*filter.EndDate))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM daily_counts WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count daily counts: %w", err)
	}

	query := `SELECT ` + countColumns + ` FROM daily_counts WHERE ` + cond +
		` ORDER BY count_date DESC, created_at DESC LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list daily counts: %w", err)
	}
	defer rows.Close()

	var list []*entity.DailyCount
	for rows.Next() {
		var c entity.DailyCount
		if err := rows.Scan(&c.ID, &c.ProductID, &c.LocationID, &c.CountDate, &c.OpeningQuantity,
			&c.CountedQuantity, &c.CalculatedUsage, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan daily count: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// UsageSummary consumo agregado por producto en [start, end]. Los consumos
// negativos (conteo mayor al registrado) no aportan al promedio.
func (r *DailyCountRepo) UsageSummary(ctx context.Context, locationID string, start, end time.Time) ([]repository.UsageSummaryRow, error) {
	args := []any{start, end}
	cond := "dc.count_date BETWEEN $1 AND $2"
	if locationID != "" {
		args = append(args, locationID)
		cond += " AND dc.location_id = $3"
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	query := fmt.Sprintf(`
		SELECT dc.product_id, p.name, p.sku,
		       COALESCE(SUM(GREATEST(dc.calculated_usage, 0)), 0) AS total_usage,
		       COALESCE(SUM(GREATEST(dc.calculated_usage, 0)), 0)::float / %d AS avg_daily,
		       COUNT(DISTINCT dc.count_date) AS count_days
		FROM daily_counts dc
		JOIN products p ON p.id = dc.product_id
		WHERE %s
		GROUP BY dc.product_id, p.name, p.sku
		ORDER BY total_usage DESC`, days, cond)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("usage summary: %w", err)
	}
	defer rows.Close()

	var out []repository.UsageSummaryRow
	for rows.Next() {
		var row repository.UsageSummaryRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.SKU, &row.TotalUsage, &row.AvgDailyUsage, &row.CountDays); err != nil {
			return nil, fmt.Errorf("scan usage summary: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *DailyCountRepo) scanOne(row pgx.Row) (*entity.DailyCount, error) {
	var c entity.DailyCount
	err := row.Scan(&c.ID, &c.ProductID, &c.LocationID, &c.CountDate, &c.OpeningQuantity,
		&c.CountedQuantity, &c.CalculatedUsage, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily count: %w", err)
	}
	return &c, nil
}
