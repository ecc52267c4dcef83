package repository

import "github.com/jortega/stock-management-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	Update(location *entity.Location) error
	ListActive() ([]*entity.Location, error)
	// Deactivate baja lógica: las sedes referenciadas por transacciones no se borran.
	Deactivate(id string) error
}
