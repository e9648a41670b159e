package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras (DIP).
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	GetByNumber(purchaseNumber string) (*entity.Purchase, error)
	List(limit, offset int) ([]*entity.Purchase, error)
	Delete(id string) error
	// NextSequence devuelve el siguiente consecutivo para numerar compras.
	NextSequence() (int64, error)
}

// ProductionOrderRepository define el puerto de persistencia para órdenes de producción (DIP).
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	GetByNumber(orderNumber string) (*entity.ProductionOrder, error)
	List(limit, offset int) ([]*entity.ProductionOrder, error)
	Delete(id string) error
	NextSequence() (int64, error)
}
