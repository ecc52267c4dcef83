package stock

import (
	"context"
	"time"

	"github.com/jortega/stock-management-api/internal/application/dto"
	"github.com/jortega/stock-management-api/internal/domain/entity"
	"github.com/jortega/stock-management-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del inventario y el
// append de la transacción de stock se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		txRepo repository.StockTransactionRepository,
		countRepo repository.DailyCountRepository,
	) error) error
}

// Actor identidad autenticada que ejecuta la operación (claims del JWT).
type Actor struct {
	UserID     string
	Role       string
	LocationID string // sede asignada; vacío para admin y manager
}

// CanActOnLocation predicado de autorización por sede: admin y manager operan
// sobre cualquier sede, staff solo sobre la suya.
func (a Actor) CanActOnLocation(locationID string) bool {
	switch a.Role {
	case entity.RoleAdmin, entity.RoleManager:
		return true
	case entity.RoleStaff:
		return a.LocationID != "" && a.LocationID == locationID
	}
	return false
}

// PurchaseOrderPDFGenerator renderiza las sugerencias de compra como órdenes
// en PDF, una hoja por proveedor.
type PurchaseOrderPDFGenerator interface {
	Render(groups []dto.PurchaseSuggestionGroup, generatedAt time.Time) ([]byte, error)
}
