package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// ProductRepository define el puerto hacia la proyección local del catálogo (DIP).
// GetByNameKey recibe el nombre ya normalizado (inventory.NormalizeName).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByNameKey(nameKey string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
