package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del registro de transacciones sobre PostgreSQL.
// Solo INSERT y SELECT: las filas nunca se modifican ni se borran.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador de transacciones. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

const txColumns = `id, type, product_id, from_location_id, to_location_id, quantity, supplier_id, reference_id, notes, created_by, created_at`

// Create inserta una transacción de stock.
func (r *StockTransactionRepo) Create(ctx context.Context, tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, type, product_id, from_location_id, to_location_id, quantity, supplier_id, reference_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.Type, tx.ProductID, tx.FromLocationID, tx.ToLocationID,
		tx.Quantity, tx.SupplierID, tx.ReferenceID, tx.Notes, tx.CreatedBy, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *StockTransactionRepo) GetByID(ctx context.Context, id string) (*entity.StockTransaction, error) {
	query := `SELECT ` + txColumns + ` FROM stock_transactions WHERE id = $1`
	var t entity.StockTransaction
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Type, &t.ProductID, &t.FromLocationID, &t.ToLocationID,
		&t.Quantity, &t.SupplierID, &t.ReferenceID, &t.Notes, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return &t, nil
}

// List consulta el historial con filtros y paginación; devuelve también el total.
// El filtro por sede matchea origen o destino.
func (r *StockTransactionRepo) List(ctx context.Context, filter repository.TransactionFilter) ([]*entity.StockTransaction, int, error) {
	where := []string{"1=1"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.LocationID != "" {
		p := arg(filter.LocationID)
		where = append(where, fmt.Sprintf("(from_location_id = %s OR to_location_id = %s)", p, p))
	}
	if filter.ProductID != "" {
		where = append(where, "product_id = "+arg(filter.ProductID))
	}
	if filter.Type != "" {
		where = append(where, "type = "+arg(filter.Type))
	}
	if filter.StartDate != nil {
		where = append(where, "created_at >= "+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		where = append(where, "created_at < "+arg(filter.EndDate.AddDate(0, 0, 1)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_transactions WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock transactions: %w", err)
	}

	query := `SELECT ` + txColumns + ` FROM stock_transactions WHERE ` + cond +
		` ORDER BY created_at DESC LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(&t.ID, &t.Type, &t.ProductID, &t.FromLocationID, &t.ToLocationID,
			&t.Quantity, &t.SupplierID, &t.ReferenceID, &t.Notes, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, total, rows.Err()
}
