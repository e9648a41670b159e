package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// InventoryItemRepository define el puerto de persistencia para el agregado de
// stock por (producto, bodega) (DIP). Los lookups por nombre reciben la clave
// ya normalizada (inventory.NormalizeName).
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.InventoryItem, error)
	GetByProductAndWarehouse(productID, warehouseID string) (*entity.InventoryItem, error)
	GetByNameAndWarehouse(nameKey, warehouseID string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	// ListAll devuelve todos los ítems (recorrido secuencial de la reconciliación batch).
	ListAll() ([]*entity.InventoryItem, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryItem, error)
}
