package repository

import "github.com/jortega/stock-management-api/internal/domain/entity"

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Search     string // busca en nombre y SKU (normalizado)
	BrandID    string
	SupplierID string
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, int, error)
	Delete(id string) error
}
