package repository

import (
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de movimientos (DIP).
// El libro es append-only: no existe Update. Delete solo lo usa la reversión
// en cascada.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// ListByItem devuelve TODOS los movimientos de un ítem en orden de
	// inserción ascendente. Es la entrada del replay de saldo.
	ListByItem(itemID string) ([]*entity.Movement, error)
	// ListByWarehouse devuelve todos los movimientos de una bodega en orden
	// de inserción (para re-sumar ocupación).
	ListByWarehouse(warehouseID string) ([]*entity.Movement, error)
	// ListByItemPaged lista movimientos de un ítem con rango de fechas y paginación.
	ListByItemPaged(itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// ListInboundByReference devuelve los movimientos de entrada cuyo
	// ReferenceNumber coincide (objetivo de la reversión en cascada).
	ListInboundByReference(referenceNumber string) ([]*entity.Movement, error)
	Delete(id string) error
}
