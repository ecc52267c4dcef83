package entity

import "time"

// Inventory representa el stock actual de un producto en una sede.
// Una fila por par (producto, sede); se crea de forma perezosa con el primer movimiento.
type Inventory struct {
	ProductID  string
	LocationID string
	Quantity   int64
	UpdatedAt  time.Time
}
