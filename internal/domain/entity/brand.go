package entity

import "time"

// Brand representa una marca comercial de los productos.
type Brand struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
