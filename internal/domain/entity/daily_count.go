package entity

import "time"

// DailyCount representa el conteo físico diario de un producto en una sede.
// Único por (producto, sede, fecha). CalculatedUsage = OpeningQuantity - CountedQuantity;
// puede ser negativo (conteo mayor al stock registrado: error de conteo o entrada no registrada).
type DailyCount struct {
	ID              string
	ProductID       string
	LocationID      string
	CountDate       time.Time // solo fecha, sin hora
	OpeningQuantity int64     // snapshot del inventario al momento del primer conteo
	CountedQuantity int64
	CalculatedUsage int64
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
