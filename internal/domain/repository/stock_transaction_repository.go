package repository

import (
	"context"
	"time"

	"github.com/jortega/stock-management-api/internal/domain/entity"
)

// TransactionFilter criterios de consulta del historial de transacciones.
type TransactionFilter struct {
	LocationID string // matchea origen o destino
	ProductID  string
	Type       string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// StockTransactionRepository define el puerto del registro inmutable de
// transacciones de stock. Solo inserta y consulta; nunca modifica filas.
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	GetByID(ctx context.Context, id string) (*entity.StockTransaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*entity.StockTransaction, int, error)
}
