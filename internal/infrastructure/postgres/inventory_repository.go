package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
	"github.com/jortega/stock-management-api/pkg/search"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene el stock actual de un producto en una sede. Nil si nunca hubo movimiento.
func (r *InventoryRepo) Get(ctx context.Context, productID, locationID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND location_id = $2`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&inv.ProductID, &inv.LocationID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE). Si la fila
// no existe devuelve un registro en cero; el Upsert la crea al confirmar.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&inv.ProductID, &inv.LocationID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{ProductID: productID, LocationID: locationID, Quantity: 0}, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza la cantidad de stock (por producto y sede).
func (r *InventoryRepo) Upsert(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, inv.ProductID, inv.LocationID, inv.Quantity)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// List lista el inventario enriquecido con producto y sede, con filtros opcionales.
func (r *InventoryRepo) List(ctx context.Context, filter repository.InventoryFilter) ([]repository.InventoryItem, error) {
	where := []string{"l.is_active", "p.is_active"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.LocationID != "" {
		where = append(where, "i.location_id = "+arg(filter.LocationID))
	}
	if filter.Search != "" {
		where = append(where, "p.search_name LIKE "+arg("%"+search.Normalize(filter.Search)+"%"))
	}
	if filter.LowStock {
		where = append(where, "p.reorder_point > 0 AND i.quantity <= p.reorder_point")
	}

	query := `
		SELECT i.product_id, p.sku, p.name, i.location_id, l.name, i.quantity, p.reorder_point
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN locations l ON l.id = i.location_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY l.name, p.name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var items []repository.InventoryItem
	for rows.Next() {
		var it repository.InventoryItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.LocationID, &it.LocationName, &it.Quantity, &it.ReorderPoint); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
