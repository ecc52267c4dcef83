package entity

import "time"

// Tipos de sede.
const (
	LocationTypeWarehouse = "warehouse" // bodega central, único destino de entradas
	LocationTypeStore     = "store"     // tienda, solo recibe traslados
)

// Location representa una sede física donde se almacena inventario:
// la bodega central o una tienda.
type Location struct {
	ID        string
	Name      string
	Type      string // warehouse | store
	Address   string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWarehouse indica si la sede es bodega central.
func (l *Location) IsWarehouse() bool {
	return l.Type == LocationTypeWarehouse
}
