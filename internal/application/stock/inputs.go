package stock

import (
	"github.com/jortega/stock-management-api/internal/domain"
)

// Entradas tipadas por variante de transacción: cada una lleva solo los campos
// que su tipo requiere y se valida al construirse, antes de tocar la BD.

// StockInInput entrada de mercancía en bodega central.
type StockInInput struct {
	ProductID  string
	LocationID string
	Quantity   int64
	SupplierID string // opcional
	Notes      string
}

// Validate verifica los campos requeridos y la cantidad positiva.
func (in StockInInput) Validate() error {
	if in.ProductID == "" || in.LocationID == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// TransferInput traslado entre dos sedes.
type TransferInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64
	Notes          string
}

// Validate exige ambas sedes, distintas entre sí, y cantidad positiva.
func (in TransferInput) Validate() error {
	if in.ProductID == "" || in.FromLocationID == "" || in.ToLocationID == "" {
		return domain.ErrInvalidInput
	}
	if in.FromLocationID == in.ToLocationID {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// AdjustmentInput corrección manual: fija la cantidad absoluta del registro.
type AdjustmentInput struct {
	ProductID   string
	LocationID  string
	NewQuantity int64
	Reason      string
}

// Validate rechaza cantidades objetivo negativas: el inventario registrado
// nunca queda bajo cero.
func (in AdjustmentInput) Validate() error {
	if in.ProductID == "" || in.LocationID == "" {
		return domain.ErrInvalidInput
	}
	if in.NewQuantity < 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}
