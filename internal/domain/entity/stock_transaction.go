package entity

import "time"

// Tipos de transacción de stock.
const (
	TransactionTypeStockIn              = "stock_in"               // entrada en bodega central
	TransactionTypeTransfer             = "transfer"               // traslado bodega -> tienda
	TransactionTypeAdjustment           = "adjustment"             // corrección manual (merma, daño)
	TransactionTypeDailyUsage           = "daily_usage"            // consumo derivado del conteo diario
	TransactionTypeDailyUsageAdjustment = "daily_usage_adjustment" // corrección de un conteo ya registrado
)

// StockTransaction es el registro inmutable de un movimiento de stock.
// transfer lleva ambas sedes en la misma fila; stock_in solo destino;
// los tipos derivados de conteo llevan solo origen y referencian el conteo.
type StockTransaction struct {
	ID             string
	Type           string
	ProductID      string
	FromLocationID *string
	ToLocationID   *string
	Quantity       int64 // con signo según el tipo (negativo en ajustes a la baja)
	SupplierID     *string
	ReferenceID    *string // ID del conteo diario que originó la fila, si aplica
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
}
